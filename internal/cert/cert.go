package cert

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Issuer is the name printed on every certificate.
const Issuer = "SkillPath"

// Data is the payload stored with a certificate and rendered into the
// downloadable document.
type Data struct {
	RecipientName  string    `json:"recipientName"`
	CourseName     string    `json:"courseName"`
	Duration       string    `json:"duration"`
	CompletionDate time.Time `json:"completionDate"`
	Issuer         string    `json:"issuer"`
	CertificateID  uuid.UUID `json:"certificateId"`
}

// Issue builds the certificate payload for a completed course. The
// certificate ID doubles as the stored row ID so the printed ID always
// matches the database.
func Issue(recipientName, courseName, duration string, completedAt time.Time) Data {
	if recipientName == "" {
		recipientName = "Learner"
	}
	return Data{
		RecipientName:  recipientName,
		CourseName:     courseName,
		Duration:       duration,
		CompletionDate: completedAt,
		Issuer:         Issuer,
		CertificateID:  uuid.New(),
	}
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Filename returns the download filename for a course's certificate.
func Filename(courseName string) string {
	name := strings.Trim(unsafeFilenameRe.ReplaceAllString(courseName, "_"), "_")
	return name + "_Certificate.html"
}
