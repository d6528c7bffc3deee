package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPublisher_Publish(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "passengers.csv", "passenger_id\n1\n")
	manifestPath := writeFile(t, dir, "manifest.yaml", "seed: 1\n")

	putter := new(mockPutter)
	putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "demo-data" &&
			aws.ToString(in.Key) == "runs/42/passengers.csv" &&
			aws.ToString(in.ContentType) == "text/csv" &&
			aws.ToInt64(in.ContentLength) == int64(len("passenger_id\n1\n"))
	})).Return(&s3.PutObjectOutput{}, nil).Once()
	putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Key) == "runs/42/manifest.yaml" &&
			aws.ToString(in.ContentType) == "application/yaml"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	p := NewPublisher(putter, "demo-data", "runs/42")
	urls, err := p.Publish(context.Background(), []string{csvPath, manifestPath})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"s3://demo-data/runs/42/passengers.csv",
		"s3://demo-data/runs/42/manifest.yaml",
	}, urls)
	putter.AssertExpectations(t)
}

func TestPublisher_StopsOnFailure(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "flights.csv", "flight_id\n")
	second := writeFile(t, dir, "bookings.csv", "booking_id\n")

	putter := new(mockPutter)
	putter.On("PutObject", mock.Anything, mock.Anything).
		Return(nil, errors.New("access denied")).Once()

	p := NewPublisher(putter, "demo-data", "")
	urls, err := p.Publish(context.Background(), []string{first, second})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flights.csv")
	assert.Empty(t, urls)
	putter.AssertNumberOfCalls(t, "PutObject", 1)

	// local output is untouched
	_, statErr := os.Stat(first)
	assert.NoError(t, statErr)
}
