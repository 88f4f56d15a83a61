// Package locale holds the user-visible strings of the dependencies panel
// and the notifications that abort the command.
//
// Two catalogs ship: English (the default) and Simplified Chinese.
// [Lookup] picks one for a BCP 47 tag or a POSIX locale such as
// "zh_CN.UTF-8":
//
//	s := locale.Lookup(os.Getenv("LANG"))
//	fmt.Println(s.NoDescription)
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/matzehuels/knowdeps/pkg/errors"
)

// Strings is one catalog of panel and notification texts.
type Strings struct {
	Tag string // BCP 47 tag written into the document's lang attribute

	CommandTitle    string
	PanelTitle      string
	RuntimeTitle    string
	DevTitle        string
	NoDescription   string
	Unavailable     string
	PackageLinkText string
	SearchLinkText  string
	SectionLoaded   string // format with the section title
	EmptySection    string

	NoWorkspace        string
	ManifestUnreadable string
	ManifestInvalid    string
}

var (
	// English is the default catalog.
	English = Strings{
		Tag:                "en",
		CommandTitle:       "Show project dependencies",
		PanelTitle:         "Project Dependencies",
		RuntimeTitle:       "Dependencies",
		DevTitle:           "Dev Dependencies",
		NoDescription:      "no description",
		Unavailable:        "description unavailable",
		PackageLinkText:    "npm",
		SearchLinkText:     "GitHub",
		SectionLoaded:      "%s loaded",
		EmptySection:       "none",
		NoWorkspace:        "no workspace open",
		ManifestUnreadable: "cannot read package.json",
		ManifestInvalid:    "package.json is not valid JSON",
	}

	// Chinese is the Simplified Chinese catalog.
	Chinese = Strings{
		Tag:                "zh-CN",
		CommandTitle:       "显示项目依赖",
		PanelTitle:         "项目依赖",
		RuntimeTitle:       "项目依赖",
		DevTitle:           "项目开发依赖",
		NoDescription:      "无描述",
		Unavailable:        "无法获取描述",
		PackageLinkText:    "NPM",
		SearchLinkText:     "GitHub",
		SectionLoaded:      "%s 已加载",
		EmptySection:       "无",
		NoWorkspace:        "没有打开的工作区",
		ManifestUnreadable: "无法读取 package.json 文件",
		ManifestInvalid:    "package.json 不是有效的 JSON",
	}
)

var (
	catalogs = []Strings{English, Chinese}
	matcher  = language.NewMatcher([]language.Tag{language.English, language.SimplifiedChinese})
)

// Lookup returns the catalog that best matches tag. Empty, unparsable, and
// "C"/"POSIX" locales get [English].
func Lookup(tag string) Strings {
	tag = normalize(tag)
	if tag == "" {
		return English
	}
	t, err := language.Parse(tag)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return English
	}
	return catalogs[idx]
}

// normalize turns a POSIX locale like "zh_CN.UTF-8@latin" into "zh-CN".
func normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	if tag == "C" || tag == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(tag, "_", "-")
}

// Notification returns the localized text for an environment error. Other
// errors keep their own message.
func (s Strings) Notification(err error) string {
	switch errors.GetCode(err) {
	case errors.ErrCodeNoWorkspace:
		return s.NoWorkspace
	case errors.ErrCodeManifestUnreadable:
		return s.ManifestUnreadable
	case errors.ErrCodeInvalidManifest:
		return s.ManifestInvalid
	}
	return errors.UserMessage(err)
}
