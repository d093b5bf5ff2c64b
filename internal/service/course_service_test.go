package service

import (
	"context"
	"testing"
	"time"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"gorm.io/gorm"
)

func seedCatalogCourse(t *testing.T, db *gorm.DB, title string, tutorID uint, published bool) {
	t.Helper()

	course := &model.Course{Title: title, Level: model.Beginner, TutorID: tutorID, IsPublished: published}
	if published {
		now := time.Now()
		course.PublishedAt = &now
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course %q: %v", title, err)
	}
}

func catalogTitles(page *CatalogPage) map[string]bool {
	titles := make(map[string]bool, len(page.Items))
	for _, c := range page.Items {
		titles[c.Title] = true
	}
	return titles
}

func TestGetCatalogTutorSeesOwnDrafts(t *testing.T) {
	db := newServiceTestDB(t)
	svc := NewCourseService(repository.NewCourseRepository(db), repository.NewEnrollmentRepository(db), nil)

	seedCatalogCourse(t, db, "Go Fundamentals", 1, true)
	seedCatalogCourse(t, db, "Draft Generics", 1, false)
	seedCatalogCourse(t, db, "Draft Databases", 2, false)

	ctx := context.Background()

	guest, err := svc.GetCatalog(ctx, 1, 10, "", nil)
	if err != nil {
		t.Fatalf("guest catalog: %v", err)
	}
	if guest.Total != 1 || !catalogTitles(guest)["Go Fundamentals"] {
		t.Errorf("guest sees %d courses %v, want only the published one", guest.Total, catalogTitles(guest))
	}

	tutor, err := svc.GetCatalog(ctx, 1, 10, "", &util.Claims{UserID: 1, Role: model.Tutor})
	if err != nil {
		t.Fatalf("tutor catalog: %v", err)
	}
	titles := catalogTitles(tutor)
	if tutor.Total != 2 || !titles["Go Fundamentals"] || !titles["Draft Generics"] {
		t.Errorf("tutor sees %d courses %v, want the published course plus their own draft", tutor.Total, titles)
	}
	if titles["Draft Databases"] {
		t.Error("tutor must not see another tutor's draft")
	}

	student, err := svc.GetCatalog(ctx, 1, 10, "", &util.Claims{UserID: 1, Role: model.Student})
	if err != nil {
		t.Fatalf("student catalog: %v", err)
	}
	if student.Total != 1 {
		t.Errorf("student sees %d courses, want only published ones", student.Total)
	}
}
