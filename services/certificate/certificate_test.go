package certificate

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"inspecteur/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestRenderProducesHtmlDataUri(t *testing.T) {
	svc := NewService()

	issuedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	uri := svc.Render("Marie Curie", "abc-123", issuedAt)

	require.True(t, strings.HasPrefix(uri, "data:text/html;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:text/html;base64,"))
	require.NoError(t, err)

	doc := string(decoded)
	assert.Contains(t, doc, "Marie Curie")
	assert.Contains(t, doc, "abc-123")
	assert.Contains(t, doc, "15/03/2026")
	assert.Contains(t, doc, "CERTIFICAT DE RÉUSSITE")
}

func TestIssueIsAtMostOnce(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService()

	user := models.User{Name: "Jean Dupont", Email: "jean@test.fr", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	issued, err := svc.Issue(db, &user)
	require.NoError(t, err)
	assert.True(t, issued)

	var first models.User
	require.NoError(t, db.First(&first, user.ID).Error)
	assert.NotEmpty(t, first.CertificateURL)
	assert.NotEmpty(t, first.CertificateNumber)
	require.NotNil(t, first.CertificateIssuedAt)

	issued, err = svc.Issue(db, &user)
	require.NoError(t, err)
	assert.False(t, issued)

	var second models.User
	require.NoError(t, db.First(&second, user.ID).Error)
	assert.Equal(t, first.CertificateURL, second.CertificateURL)
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)
}
