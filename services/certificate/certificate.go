package certificate

import (
	"encoding/base64"
	"fmt"
	"inspecteur/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service renders completion certificates and records the reference on the
// user. Issuance is at-most-once per user: the write is a conditional
// update guarded on the certificate column still being empty, so two
// concurrent "complete last module" requests cannot both issue.
type Service struct {
	courseName string
}

// NewService builds the certificate issuer
func NewService() *Service {
	return &Service{courseName: "Formation Inspecteur Auto"}
}

// Render produces the certificate document as an HTML data URI
func (s *Service) Render(studentName, number string, issuedAt time.Time) string {
	doc := fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="UTF-8">
<style>
	body { font-family: Georgia, 'Times New Roman', serif; background: #FFFFFF; color: #1A1A2E; text-align: center; padding: 60px; }
	.frame { border: 6px double #E94560; padding: 60px 40px; max-width: 720px; margin: 0 auto; }
	h1 { font-size: 34px; letter-spacing: 2px; margin-bottom: 8px; }
	.subtitle { color: #666666; margin-bottom: 40px; }
	.student { font-size: 28px; font-weight: bold; margin: 24px 0; }
	.meta { margin-top: 48px; font-size: 13px; color: #666666; }
</style>
</head>
<body>
	<div class="frame">
		<h1>CERTIFICAT DE RÉUSSITE</h1>
		<div class="subtitle">%s</div>
		<p>Ce certificat est décerné à</p>
		<div class="student">%s</div>
		<p>pour avoir complété avec succès l'ensemble des modules de la formation.</p>
		<div class="meta">
			Délivré le %s<br>
			Certificat n° %s
		</div>
	</div>
</body>
</html>`, s.courseName, studentName, issuedAt.Format("02/01/2006"), number)

	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(doc))
}

// Issue generates and stores the certificate for the user if none exists
// yet. Returns true when this call performed the issuance, false when a
// certificate was already present.
func (s *Service) Issue(db *gorm.DB, user *models.User) (bool, error) {
	number := uuid.NewString()
	issuedAt := time.Now()
	dataURI := s.Render(user.Name, number, issuedAt)

	res := db.Model(&models.User{}).
		Where("id = ? AND (certificate_url = '' OR certificate_url IS NULL)", user.ID).
		Updates(map[string]interface{}{
			"certificate_url":       dataURI,
			"certificate_number":    number,
			"certificate_issued_at": issuedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
