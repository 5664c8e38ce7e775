// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides the translated user-facing strings of Registrar.
// Translation files are embedded YAML, loaded into a go-i18n bundle.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

// Init loads every embedded locale file and selects l. Unknown languages
// fall back to English.
func Init(l string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			continue
		}
		// Files are named active.<lang>.yaml so go-i18n can infer the tag.
		_, _ = bundle.ParseMessageFileBytes(data, f.Name())
	}

	localizer = i18n.NewLocalizer(bundle, l, language.English.String())
}

// T translates messageID. When args are given the translation is used as a
// fmt format string. Unknown ids are returned unchanged.
func T(messageID string, args ...any) string {
	if localizer == nil {
		Init("en")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		msg = messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Available lists the language tags of the embedded locales.
func Available() []string {
	if bundle == nil {
		Init("en")
	}
	var tags []string
	for _, t := range bundle.LanguageTags() {
		tags = append(tags, t.String())
	}
	sort.Strings(tags)
	return tags
}

// Supported reports whether l matches one of the embedded locales.
func Supported(l string) bool {
	for _, t := range Available() {
		if strings.EqualFold(t, l) {
			return true
		}
	}
	return false
}
