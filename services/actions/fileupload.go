package actions

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"bizhub/models"
)

// StagedFile is the metadata of a file offered to a file_upload field.
type StagedFile struct {
	Name string `json:"name"`
	Type string `json:"type"` // MIME type
	Size int64  `json:"size"`
}

// FilterFiles partitions files by the field's allow-list and size ceiling.
// Rejected files are dropped and described in one combined message. The
// result depends only on the file metadata.
func FilterFiles(spec *models.FileUploadSpec, files []StagedFile) ([]StagedFile, string) {
	accepted := make([]StagedFile, 0, len(files))
	var rejected []string
	for _, f := range files {
		if reason := rejectReason(spec, f); reason != "" {
			rejected = append(rejected, fmt.Sprintf("%s (%s)", f.Name, reason))
			continue
		}
		accepted = append(accepted, f)
	}
	if len(rejected) == 0 {
		return accepted, ""
	}
	noun := "file was"
	if len(rejected) > 1 {
		noun = "files were"
	}
	return accepted, fmt.Sprintf("%d %s skipped: %s", len(rejected), noun, strings.Join(rejected, ", "))
}

// StageFiles filters incoming files and returns the new field value. Accepted
// files replace the current value when the field takes several files, or the
// first accepted file becomes the only element otherwise. When nothing is
// accepted the current value is kept.
func StageFiles(spec *models.FileUploadSpec, current, incoming []StagedFile) ([]StagedFile, string) {
	accepted, msg := FilterFiles(spec, incoming)
	if len(accepted) == 0 {
		return append([]StagedFile(nil), current...), msg
	}
	if spec != nil && spec.Multiple {
		return accepted, msg
	}
	return accepted[:1], msg
}

func rejectReason(spec *models.FileUploadSpec, f StagedFile) string {
	if spec == nil {
		return ""
	}
	if spec.MaxSize > 0 && f.Size > spec.MaxSize {
		return "exceeds " + humanSize(spec.MaxSize)
	}
	if len(spec.AcceptedTypes) > 0 && !accepts(spec.AcceptedTypes, f) {
		return "type not allowed"
	}
	return ""
}

// accepts matches exact MIME types, "type/*" wildcards and ".ext" entries.
func accepts(allowed []string, f StagedFile) bool {
	ext := strings.ToLower(filepath.Ext(f.Name))
	ctype := strings.ToLower(strings.TrimSpace(f.Type))
	if i := strings.IndexByte(ctype, ';'); i >= 0 {
		ctype = strings.TrimSpace(ctype[:i])
	}
	if ctype == "" && ext != "" {
		ctype, _, _ = strings.Cut(mime.TypeByExtension(ext), ";")
	}
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		switch {
		case strings.HasPrefix(a, "."):
			if ext == a {
				return true
			}
		case strings.HasSuffix(a, "/*"):
			if strings.HasPrefix(ctype, strings.TrimSuffix(a, "*")) {
				return true
			}
		case a == ctype:
			return true
		}
	}
	return false
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
