package profile

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	FullName  string     `json:"full_name"`
	Title     *string    `json:"title"`
	Bio       *string    `json:"bio"`
	Location  *string    `json:"location"`
	Pronouns  *string    `json:"pronouns"`
	FunFact   *string    `json:"fun_fact"`
	Motto     *string    `json:"motto"`
	Picture   *string    `json:"picture"`
	Phone     *string    `json:"phone"`
	Socials   *Socials   `json:"socials"`
	Languages []Language `json:"languages"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Language struct {
	ID        uuid.UUID     `json:"id"`
	ProfileID uuid.UUID     `json:"profile_id"`
	Name      string        `json:"name"`
	Level     LanguageLevel `json:"level"`
}

// Patch is a partial profile write. Nil fields are left untouched on update.
type Patch struct {
	FullName string
	Title    *string
	Bio      *string
	Location *string
	Pronouns *string
	FunFact  *string
	Motto    *string
	Picture  *string
	Phone    *string
	Socials  *Socials
}

// Socials holds a free-form JSON value: usually an object of links, sometimes a plain string.
type Socials struct {
	value any
}

func NewSocials(v any) *Socials {
	return &Socials{value: v}
}

func (s *Socials) Value() any {
	if s == nil {
		return nil
	}
	return s.value
}

func (s Socials) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s *Socials) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.value = v
	return nil
}
