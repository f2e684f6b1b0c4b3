package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	params    uploader.UploadParams
	body      string
	result    *uploader.UploadResult
	err       error
	destroyed []string
}

func (f *fakeUploader) Upload(_ context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = params
	if r, ok := file.(io.Reader); ok {
		b, _ := io.ReadAll(r)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeUploader) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = append(f.destroyed, params.PublicID)
	return &uploader.DestroyResult{Result: "ok"}, f.err
}

func TestUploadDocument(t *testing.T) {
	up := &fakeUploader{result: &uploader.UploadResult{PublicID: "boards/b1/my_contract_1", SecureURL: "https://cdn.test/x", Bytes: 321}}
	svc := newStorageService(up, "demo", "secret", nil)

	doc, err := svc.UploadDocument(context.Background(), strings.NewReader("data"), "boards/b1", FileMeta{
		FileName: "My Contract.v2.pdf", ContentType: "application/pdf", Size: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, "boards/b1", up.params.Folder)
	assert.Equal(t, "auto", up.params.ResourceType)
	assert.True(t, strings.HasPrefix(up.params.PublicID, "my_contract_v2_"), up.params.PublicID)
	assert.Equal(t, "data", up.body)

	assert.Equal(t, "boards/b1/my_contract_1", doc.PublicID)
	assert.Equal(t, "https://cdn.test/x", doc.URL)
	assert.Equal(t, int64(321), doc.Size)
	assert.Equal(t, "My Contract.v2.pdf", doc.FileName)
}

func TestUploadDocumentFailures(t *testing.T) {
	boom := errors.New("network")
	_, err := newStorageService(&fakeUploader{err: boom}, "demo", "secret", nil).
		UploadDocument(context.Background(), strings.NewReader(""), "f", FileMeta{FileName: "a.pdf"})
	assert.ErrorIs(t, err, boom)

	rejected := &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}
	_, err = newStorageService(&fakeUploader{result: rejected}, "demo", "secret", nil).
		UploadDocument(context.Background(), strings.NewReader(""), "f", FileMeta{FileName: "a.pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestDeleteFile(t *testing.T) {
	up := &fakeUploader{}
	require.NoError(t, newStorageService(up, "demo", "secret", nil).DeleteFile(context.Background(), "boards/b1/doc"))
	assert.Equal(t, []string{"boards/b1/doc"}, up.destroyed)
}

func TestGetSecureDownloadURL(t *testing.T) {
	svc := newStorageService(&fakeUploader{}, "demo", "secret", nil)
	u, err := svc.GetSecureDownloadURL(context.Background(), "", "boards/b1/doc", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://res.cloudinary.com/demo/raw/authenticated/s--"), u)
	assert.True(t, strings.HasSuffix(u, "/boards/b1/doc"), u)

	_, err = svc.GetSecureDownloadURL(context.Background(), "raw", "", time.Hour)
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "my_file-1", sanitizeName("My File-1"))
	assert.Equal(t, "document", sanitizeName("***"))
}
