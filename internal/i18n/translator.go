package i18n

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam параметр запроса для явного выбора языка.
const LangParam = "lang"

// Translator выбирает язык из поддерживаемых и отдаёт принтеры сообщений.
type Translator struct {
	supported []language.Tag
	matcher   language.Matcher
	def       language.Tag
}

// NewTranslator регистрирует каталоги bundle и создаёт переводчик с языком по умолчанию defaultLang.
func NewTranslator(bundle *Bundle, defaultLang string) (*Translator, error) {
	if err := bundle.Register(); err != nil {
		return nil, err
	}

	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("parse default language %q: %w", defaultLang, err)
	}

	// Язык по умолчанию идёт первым: его выбирает matcher, когда совпадений нет
	supported := []language.Tag{}
	var defFound bool
	for _, locale := range bundle.Locales() {
		tag := language.MustParse(locale)
		if tag == def {
			defFound = true
			supported = append([]language.Tag{tag}, supported...)
			continue
		}
		supported = append(supported, tag)
	}
	if !defFound {
		return nil, fmt.Errorf("default language %q has no catalog", defaultLang)
	}

	return &Translator{
		supported: supported,
		matcher:   language.NewMatcher(supported),
		def:       def,
	}, nil
}

// Default возвращает язык по умолчанию.
func (t *Translator) Default() language.Tag {
	return t.def
}

// Supported возвращает поддерживаемые языки, начиная с языка по умолчанию.
func (t *Translator) Supported() []language.Tag {
	return append([]language.Tag(nil), t.supported...)
}

// Match приводит произвольный тег к ближайшему поддерживаемому.
func (t *Translator) Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return t.def
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.def
	}
	return t.supported[idx]
}

// Parse разбирает строку языка. Неизвестные и некорректные значения дают язык по умолчанию.
func (t *Translator) Parse(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return t.def
	}
	tag, err := language.Parse(value)
	if err != nil {
		return t.def
	}
	return t.Match(tag)
}

// ResolveRequest выбирает язык по ?lang, затем по Accept-Language.
func (t *Translator) ResolveRequest(r *http.Request) language.Tag {
	if r == nil {
		return t.def
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return t.Match(tag)
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return t.Match(tags...)
		}
	}
	return t.def
}

// Printer возвращает принтер для tag.
func (t *Translator) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Text переводит ключ key. Ключ без перевода возвращается как есть.
func (t *Translator) Text(tag language.Tag, key string, args ...any) string {
	return t.Printer(tag).Sprintf(key, args...)
}
