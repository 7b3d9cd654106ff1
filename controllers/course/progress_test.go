package controllers

import (
	"strings"
	"testing"

	"inspecteur/models"
	certificateService "inspecteur/services/certificate"
	emailService "inspecteur/services/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateNotIssuedWhileModulesRemain(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)
	first := createModule(t, db, 1, true)
	createModule(t, db, 2, false)

	completeModule(t, db, user.ID, first.ID)

	certSvc := certificateService.NewService()
	emailSvc := emailService.NewService("", "", "")

	issued := maybeIssueCertificate(db, certSvc, emailSvc, user)
	assert.False(t, issued)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Empty(t, reloaded.CertificateURL)
}

func TestCertificateIssuedOnceAfterLastModule(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)
	first := createModule(t, db, 1, true)
	second := createModule(t, db, 2, false)

	completeModule(t, db, user.ID, first.ID)
	completeModule(t, db, user.ID, second.ID)

	certSvc := certificateService.NewService()
	emailSvc := emailService.NewService("", "", "")

	issued := maybeIssueCertificate(db, certSvc, emailSvc, user)
	assert.True(t, issued)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.True(t, strings.HasPrefix(reloaded.CertificateURL, "data:text/html;base64,"))
	assert.NotEmpty(t, reloaded.CertificateNumber)
	require.NotNil(t, reloaded.CertificateIssuedAt)

	// A second trigger must not re-issue or change the stored certificate
	issuedAgain := maybeIssueCertificate(db, certSvc, emailSvc, user)
	assert.False(t, issuedAgain)

	var after models.User
	require.NoError(t, db.First(&after, user.ID).Error)
	assert.Equal(t, reloaded.CertificateURL, after.CertificateURL)
	assert.Equal(t, reloaded.CertificateNumber, after.CertificateNumber)
}

func TestCertificateIgnoresUnpublishedModules(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)
	first := createModule(t, db, 1, true)

	draft := createModule(t, db, 2, false)
	require.NoError(t, db.Model(draft).Update("is_published", false).Error)

	completeModule(t, db, user.ID, first.ID)

	certSvc := certificateService.NewService()
	emailSvc := emailService.NewService("", "", "")

	issued := maybeIssueCertificate(db, certSvc, emailSvc, user)
	assert.True(t, issued, "a draft module must not block issuance")
}

func TestCertificateNotIssuedWithoutAnyModules(t *testing.T) {
	db := setupTestDb(t)
	user := createStudent(t, db, true)

	certSvc := certificateService.NewService()
	emailSvc := emailService.NewService("", "", "")

	assert.False(t, maybeIssueCertificate(db, certSvc, emailSvc, user))
}
