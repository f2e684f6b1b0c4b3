package actions

import (
	"testing"

	"bizhub/models"

	"github.com/stretchr/testify/assert"
)

var pdfOnly = &models.FileUploadSpec{AcceptedTypes: []string{"application/pdf", ".docx", "image/*"}, MaxSize: 2 << 20}

func TestFilterFiles(t *testing.T) {
	files := []StagedFile{
		{Name: "contract.pdf", Type: "application/pdf", Size: 1 << 20},
		{Name: "huge.pdf", Type: "application/pdf", Size: 5 << 20},
		{Name: "notes.docx", Type: "application/octet-stream", Size: 100},
		{Name: "photo.jpg", Type: "image/jpeg; charset=binary", Size: 100},
		{Name: "run.exe", Type: "application/x-msdownload", Size: 100},
	}
	accepted, msg := FilterFiles(pdfOnly, files)
	assert.Equal(t, []StagedFile{files[0], files[2], files[3]}, accepted)
	assert.Equal(t, "2 files were skipped: huge.pdf (exceeds 2 MB), run.exe (type not allowed)", msg)
}

func TestFilterFilesIsIdempotent(t *testing.T) {
	files := []StagedFile{
		{Name: "a.pdf", Type: "application/pdf", Size: 10},
		{Name: "b.txt", Type: "text/plain", Size: 10},
	}
	once, _ := FilterFiles(pdfOnly, files)
	twice, msg := FilterFiles(pdfOnly, once)
	assert.Equal(t, once, twice)
	assert.Empty(t, msg)
}

func TestFilterFilesUsesExtensionWhenTypeMissing(t *testing.T) {
	accepted, msg := FilterFiles(pdfOnly, []StagedFile{{Name: "scan.pdf", Size: 10}})
	assert.Len(t, accepted, 1)
	assert.Empty(t, msg)

	_, msg = FilterFiles(pdfOnly, []StagedFile{{Name: "clip.mov", Type: "video/quicktime", Size: 10}})
	assert.Equal(t, "1 file was skipped: clip.mov (type not allowed)", msg)
}

func TestStageFiles(t *testing.T) {
	current := []StagedFile{{Name: "old.pdf", Type: "application/pdf", Size: 10}}
	incoming := []StagedFile{
		{Name: "new1.pdf", Type: "application/pdf", Size: 10},
		{Name: "new2.pdf", Type: "application/pdf", Size: 10},
	}

	single, _ := StageFiles(pdfOnly, current, incoming)
	assert.Equal(t, incoming[:1], single)

	multi := *pdfOnly
	multi.Multiple = true
	many, _ := StageFiles(&multi, current, incoming)
	assert.Equal(t, incoming, many)

	kept, msg := StageFiles(pdfOnly, current, []StagedFile{{Name: "bad.exe", Type: "application/x-msdownload", Size: 1}})
	assert.Equal(t, current, kept)
	assert.NotEmpty(t, msg)
}
