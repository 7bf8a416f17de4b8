package leadstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockS3Client records PutObject calls and serves objects from memory.
type mockS3Client struct {
	putCalls []putCall
	objects  map[string][]byte
	getErr   error
}

type putCall struct {
	bucket      string
	key         string
	contentType string
	body        []byte
}

func newMockS3() *mockS3Client {
	return &mockS3Client{objects: make(map[string][]byte)}
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(input.Body)
	m.putCalls = append(m.putCalls, putCall{
		bucket:      *input.Bucket,
		key:         *input.Key,
		contentType: *input.ContentType,
		body:        body,
	})
	m.objects[*input.Key] = body
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.objects[*input.Key]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func TestS3Backend(t *testing.T) {
	mock := newMockS3()
	exerciseBackend(t, NewS3Backend(mock, "leads-bucket", "site/"))

	require.NotEmpty(t, mock.putCalls)
	last := mock.putCalls[len(mock.putCalls)-1]
	assert.Equal(t, "leads-bucket", last.bucket)
	assert.Equal(t, "site/rollerup_leads_store.json", last.key)
	assert.Equal(t, "application/json", last.contentType)
}

func TestS3BackendAppendRewritesWholeObject(t *testing.T) {
	mock := newMockS3()
	store := New(NewS3Backend(mock, "leads-bucket", ""), DefaultKey, nil)

	require.NoError(t, store.Append(context.Background(), sampleLead("hal")))
	require.NoError(t, store.Append(context.Background(), sampleLead("ivy")))

	require.Len(t, mock.putCalls, 2)
	assert.Contains(t, string(mock.putCalls[1].body), `"firstName":"hal"`)
	assert.Contains(t, string(mock.putCalls[1].body), `"firstName":"ivy"`)
}

func TestS3BackendGetError(t *testing.T) {
	mock := newMockS3()
	mock.getErr = errors.New("AccessDenied")

	_, err := NewS3Backend(mock, "leads-bucket", "").Get(context.Background(), DefaultKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}
