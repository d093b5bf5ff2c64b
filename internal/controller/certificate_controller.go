package controller

import (
	"errors"

	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// Verify godoc
// @Summary Verify a certificate by credential id
// @Description Public endpoint, no authentication required
// @Tags certificates
// @Produce json
// @Param credentialId path string true "Credential ID"
// @Success 200 {object} util.Response{data=service.VerificationResult}
// @Router /api/certificates/verify/{credentialId} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	credentialID := ctx.Param("credentialId")
	if credentialID == "" {
		util.BadRequest(ctx, "credential id is required")
		return
	}

	result, err := c.CertificateService.Verify(ctx.Request.Context(), credentialID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Mine godoc
// @Summary The caller's certificates
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/student/certificates [get]
func (c *CertificateController) Mine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	certs, err := c.CertificateService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, certs)
}

// Generate godoc
// @Summary Issue a certificate for a passed assessment
// @Description Re-runs issuance against the caller's best passing attempt
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param assessmentId path int true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/certificates/generate-from-assessment/{assessmentId} [post]
func (c *CertificateController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := pathID(ctx, "assessmentId")
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	cert, err := c.CertificateService.GenerateFromAssessment(claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoPassingSubmission), errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, cert)
}

// List godoc
// @Summary All issued certificates
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	status := ctx.Query("status")

	certs, total, err := c.CertificateService.List(page, limit, status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: certs, Total: total, Page: page, Limit: limit})
}

// Revoke godoc
// @Summary Revoke a certificate
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/admin/certificates/{id}/revoke [put]
func (c *CertificateController) Revoke(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid certificate id")
		return
	}

	cert, err := c.CertificateService.Revoke(id)
	if err != nil {
		if errors.Is(err, util.ErrCertificateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, cert)
}
