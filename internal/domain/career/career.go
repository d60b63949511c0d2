// Package career holds the per-user timeline records of a portfolio.
package career

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/vocab"
)

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Role        string     `json:"role"`
	Company     string     `json:"company"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`
}

type Education struct {
	ID          uuid.UUID     `json:"id"`
	OwnerID     uuid.UUID     `json:"owner_id"`
	Type        EducationType `json:"type"`
	Degree      string        `json:"degree"`
	Institution string        `json:"institution"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Description *string       `json:"description"`
}

type Achievement struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Link        *string    `json:"link"`
}

type Testimonial struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	FromName     string    `json:"from_name"`
	FromRole     *string   `json:"from_role"`
	Relationship *string   `json:"relationship"`
	Message      string    `json:"message"`
	Rating       *int      `json:"rating"`
}

type EducationType string

const (
	EducationDegree        EducationType = "DEGREE"
	EducationCertification EducationType = "CERTIFICATION"
	EducationBootcamp      EducationType = "BOOTCAMP"
	EducationCourse        EducationType = "COURSE"
	EducationSelfTaught    EducationType = "SELF_TAUGHT"
)

var EducationTypes = vocab.New("EducationType",
	[]EducationType{EducationDegree, EducationCertification, EducationBootcamp, EducationCourse, EducationSelfTaught},
	map[string]EducationType{
		"UNIVERSITY":           EducationDegree,
		"COLLEGE":              EducationDegree,
		"BACHELOR":             EducationDegree,
		"BACHELORS":            EducationDegree,
		"BACHELOR'S":           EducationDegree,
		"MASTER":               EducationDegree,
		"MASTERS":              EducationDegree,
		"MASTER'S":             EducationDegree,
		"PHD":                  EducationDegree,
		"DOCTORATE":            EducationDegree,
		"ASSOCIATE":            EducationDegree,
		"DIPLOMA":              EducationDegree,
		"HIGH_SCHOOL":          EducationDegree,
		"FORMAL":               EducationDegree,
		"CERTIFICATE":          EducationCertification,
		"CERTIFIED":            EducationCertification,
		"CERT":                 EducationCertification,
		"LICENSE":              EducationCertification,
		"PROFESSIONAL":         EducationCertification,
		"BOOT_CAMP":            EducationBootcamp,
		"INTENSIVE":            EducationBootcamp,
		"ONLINE_COURSE":        EducationCourse,
		"MOOC":                 EducationCourse,
		"TRAINING":             EducationCourse,
		"WORKSHOP":             EducationCourse,
		"CLASS":                EducationCourse,
		"SELF":                 EducationSelfTaught,
		"SELFTAUGHT":           EducationSelfTaught,
		"SELF_LEARNING":        EducationSelfTaught,
		"SELF_STUDY":           EducationSelfTaught,
		"AUTODIDACT":           EducationSelfTaught,
		"INDEPENDENT_LEARNING": EducationSelfTaught,
	},
	EducationCourse,
)

// ParseEducationType never fails; ok is false when the fallback type was used.
func ParseEducationType(raw string) (t EducationType, ok bool) {
	return EducationTypes.Coerce(raw)
}
