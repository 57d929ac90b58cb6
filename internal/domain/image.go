package domain

import (
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const ImageDir = "uploads/images"

type UploadKind int

const (
	PlayUpload UploadKind = iota + 1
	ActorUpload
)

func (k UploadKind) String() string {
	switch k {
	case PlayUpload:
		return "play"
	case ActorUpload:
		return "actor"
	default:
		return "unknown"
	}
}

// imageExtensions maps the image types reported by http.DetectContentType to
// the extension of the stored file.
var imageExtensions = map[string]string{
	"image/png":    ".png",
	"image/jpeg":   ".jpg",
	"image/gif":    ".gif",
	"image/webp":   ".webp",
	"image/bmp":    ".bmp",
	"image/x-icon": ".ico",
}

// ImageExtension returns the file extension for a sniffed image content type.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[contentType]
	return ext, ok
}

// ImageUpload names the owner of an uploaded image. Title is read for
// PlayUpload and LastName for ActorUpload.
type ImageUpload struct {
	Kind        UploadKind
	OwnerID     int
	Title       string
	LastName    string
	ContentType string
}

func NewPlayImageUpload(play PlayDetail) ImageUpload {
	return ImageUpload{Kind: PlayUpload, OwnerID: play.ID, Title: play.Title}
}

func NewActorImageUpload(actor Actor) ImageUpload {
	return ImageUpload{Kind: ActorUpload, OwnerID: actor.ID, LastName: actor.LastName}
}

func (u ImageUpload) slug() string {
	switch u.Kind {
	case PlayUpload:
		return Slugify(u.Title)
	case ActorUpload:
		return Slugify(u.LastName)
	default:
		return u.Kind.String()
	}
}

// Path returns the relative storage path "uploads/images/<slug>-<uuid><ext>".
// The extension follows ContentType, never the client's file name.
func (u ImageUpload) Path() (string, error) {
	ext, ok := ImageExtension(u.ContentType)
	if !ok {
		return "", ErrUnsupportedImageType
	}

	name := u.slug() + "-" + uuid.NewString() + ext

	return path.Join(ImageDir, name), nil
}

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases s, drops accents and anything that is not a letter,
// digit, dash or underscore, and joins words with single dashes.
func Slugify(s string) string {
	ascii, _, err := transform.String(stripMarks, s)
	if err != nil {
		ascii = s
	}

	var b strings.Builder
	pendingDash := false

	for _, r := range strings.ToLower(ascii) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingDash = true
		}
	}

	return b.String()
}
