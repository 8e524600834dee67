package assistant

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Messages resolves user-facing text from the embedded catalogues.
type Messages struct {
	Bundle    *i18n.Bundle
	Localizer *i18n.Localizer
	Languages []string
}

// NewMessages loads every embedded locale and selects lang, falling back to English.
func NewMessages(lang string) *Messages {
	bundle := i18n.NewBundle(language.English)

	m := &Messages{Bundle: bundle}

	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		m.SetLanguage(lang)
		return m
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, config.LocalePrefix), config.LocaleSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		path := config.LocalesDir + "/" + name
		if err := loadLocale(bundle, path); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		m.Languages = append(m.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	m.SetLanguage(lang)
	return m
}

// loadLocale adds the messages of one embedded file to bundle, leaving out
// annotation keys such as "_comment".
func loadLocale(bundle *i18n.Bundle, path string) error {
	buf, err := localeFS.ReadFile(path)
	if err != nil {
		return err
	}
	file, err := i18n.ParseMessageFileBytes(buf, path, map[string]i18n.UnmarshalFunc{
		config.LocaleFormat: json.Unmarshal,
	})
	if err != nil {
		return err
	}

	messages := slices.DeleteFunc(file.Messages, func(msg *i18n.Message) bool {
		return strings.HasPrefix(msg.ID, config.LocaleComment)
	})
	return bundle.AddMessages(file.Tag, messages...)
}

// SetLanguage switches the active catalogue.
func (m *Messages) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	m.Localizer = i18n.NewLocalizer(m.Bundle, lang, config.DefaultLanguage)
}

// Get translates key, substituting data into the template. A missing key
// returns the key itself so the dialogue never goes blank.
func (m *Messages) Get(key string, data map[string]any) string {
	if m == nil || m.Localizer == nil {
		return key
	}
	msg, err := m.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
