package profile

import "github.com/khoahotran/portfolio-builder/internal/domain/vocab"

type LanguageLevel string

const (
	LevelBeginner     LanguageLevel = "BEGINNER"
	LevelIntermediate LanguageLevel = "INTERMEDIATE"
	LevelAdvanced     LanguageLevel = "ADVANCED"
	LevelNative       LanguageLevel = "NATIVE"
)

var LanguageLevels = vocab.New("LanguageLevel",
	[]LanguageLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelNative},
	map[string]LanguageLevel{
		"BASIC":             LevelBeginner,
		"ELEMENTARY":        LevelBeginner,
		"A1":                LevelBeginner,
		"A2":                LevelBeginner,
		"CONVERSATIONAL":    LevelIntermediate,
		"B1":                LevelIntermediate,
		"B2":                LevelIntermediate,
		"FLUENT":            LevelAdvanced,
		"PROFICIENT":        LevelAdvanced,
		"C1":                LevelAdvanced,
		"C2":                LevelAdvanced,
		"MOTHER_TONGUE":     LevelNative,
		"BILINGUAL":         LevelNative,
		"NATIVE_SPEAKER":    LevelNative,
		"FIRST_LANGUAGE":    LevelNative,
		"PROFESSIONAL":      LevelAdvanced,
		"WORKING":           LevelIntermediate,
		"LIMITED_WORKING":   LevelIntermediate,
		"FULL_PROFESSIONAL": LevelAdvanced,
	},
	LevelBeginner,
)

// ParseLanguageLevel never fails; ok is false when the fallback level was used.
func ParseLanguageLevel(raw string) (level LanguageLevel, ok bool) {
	return LanguageLevels.Coerce(raw)
}
