package service

import (
	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
)

type DashboardService struct {
	UserRepo        *repository.UserRepository
	CourseRepo      *repository.CourseRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	AssessmentRepo  *repository.AssessmentRepository
	CertificateRepo *repository.CertificateRepository
	LiveClassRepo   *repository.LiveClassRepository
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	assessmentRepo *repository.AssessmentRepository,
	certificateRepo *repository.CertificateRepository,
	liveClassRepo *repository.LiveClassRepository,
) *DashboardService {
	return &DashboardService{
		UserRepo:        userRepo,
		CourseRepo:      courseRepo,
		EnrollmentRepo:  enrollmentRepo,
		AssessmentRepo:  assessmentRepo,
		CertificateRepo: certificateRepo,
		LiveClassRepo:   liveClassRepo,
	}
}

type StudentDashboard struct {
	EnrolledCourses   []model.Enrollment  `json:"enrolledCourses"`
	CompletedCourses  int                 `json:"completedCourses"`
	TotalSubmissions  int64               `json:"totalSubmissions"`
	PassedSubmissions int64               `json:"passedSubmissions"`
	Certificates      []model.Certificate `json:"certificates"`
	UpcomingClasses   []model.LiveClass   `json:"upcomingClasses"`
}

func (s *DashboardService) StudentOverview(userID uint) (*StudentDashboard, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	completed := 0
	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
		if e.Progress >= 100 {
			completed++
		}
	}

	totalSubs, err := s.AssessmentRepo.CountSubmissionsByUser(userID)
	if err != nil {
		return nil, err
	}
	passedSubs, err := s.AssessmentRepo.CountPassedByUser(userID)
	if err != nil {
		return nil, err
	}
	certs, err := s.CertificateRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	classes, err := s.LiveClassRepo.ListUpcomingForCourses(courseIDs)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		EnrolledCourses:   enrollments,
		CompletedCourses:  completed,
		TotalSubmissions:  totalSubs,
		PassedSubmissions: passedSubs,
		Certificates:      certs,
		UpcomingClasses:   classes,
	}, nil
}

type TutorDashboard struct {
	Courses       []model.Course    `json:"courses"`
	TotalCourses  int64             `json:"totalCourses"`
	TotalStudents int64             `json:"totalStudents"`
	Assessments   int64             `json:"assessments"`
	HostedClasses []model.LiveClass `json:"hostedClasses"`
}

func (s *DashboardService) TutorOverview(tutorID uint) (*TutorDashboard, error) {
	courses, totalCourses, err := s.CourseRepo.ListByTutor(tutorID, 1, 100)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}
	students, err := s.EnrollmentRepo.CountByCourses(courseIDs)
	if err != nil {
		return nil, err
	}

	_, assessments, err := s.AssessmentRepo.ListByCreator(tutorID, 1, 1)
	if err != nil {
		return nil, err
	}

	classes, _, err := s.LiveClassRepo.ListByHost(tutorID, 1, 10)
	if err != nil {
		return nil, err
	}

	return &TutorDashboard{
		Courses:       courses,
		TotalCourses:  totalCourses,
		TotalStudents: students,
		Assessments:   assessments,
		HostedClasses: classes,
	}, nil
}

type AdminDashboard struct {
	TotalStudents     int64 `json:"totalStudents"`
	TotalTutors       int64 `json:"totalTutors"`
	TotalCourses      int64 `json:"totalCourses"`
	TotalEnrollments  int64 `json:"totalEnrollments"`
	TotalCertificates int64 `json:"totalCertificates"`
}

func (s *DashboardService) AdminOverview() (*AdminDashboard, error) {
	students, err := s.UserRepo.CountByRole(model.Student)
	if err != nil {
		return nil, err
	}
	tutors, err := s.UserRepo.CountByRole(model.Tutor)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.Count()
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.Count()
	if err != nil {
		return nil, err
	}
	certificates, err := s.CertificateRepo.Count()
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalStudents:     students,
		TotalTutors:       tutors,
		TotalCourses:      courses,
		TotalEnrollments:  enrollments,
		TotalCertificates: certificates,
	}, nil
}
