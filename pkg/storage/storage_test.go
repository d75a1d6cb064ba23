package storage

import (
	"testing"

	"culinary-hub/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestS3(t *testing.T, cfg *aws.Config) *S3Client {
	sess, err := session.NewSession(cfg)
	require.NoError(t, err)
	return &S3Client{s3Client: s3.New(sess), bucket: "media"}
}

func TestS3ObjectURL_AWS(t *testing.T) {
	c := newTestS3(t, &aws.Config{Region: aws.String("eu-west-1")})
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/posts/a.webp", c.objectURL("posts/a.webp"))
}

func TestS3ObjectURL_CustomEndpoint(t *testing.T) {
	c := newTestS3(t, &aws.Config{
		Region:     aws.String("us-east-1"),
		Endpoint:   aws.String("http://localhost:4566"),
		DisableSSL: aws.Bool(true),
	})
	assert.Equal(t, "http://localhost:4566/media/posts/a.webp", c.objectURL("posts/a.webp"))
}

func TestCloudinaryPublicID(t *testing.T) {
	c := &CloudinaryClient{folder: "culinary-hub"}
	assert.Equal(t, "culinary-hub/recipes/abc", c.publicID("recipes/abc.webp"))

	c.folder = ""
	assert.Equal(t, "recipes/abc", c.publicID("recipes/abc.webp"))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(&config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}

func TestNew_CloudinaryRequiresCredentials(t *testing.T) {
	_, err := New(&config.Config{StorageDriver: "cloudinary"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
