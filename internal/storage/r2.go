// Package storage wraps the R2 bucket screenshots are stored in behind
// the S3 API.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/myth3x/mythex-snapshare/internal/config"
)

type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

func NewClient(ctx context.Context) (*Client, error) {
	cfg := appconfig.AppConfig

	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	// Public URL construction depends on R2 setup (custom domain or r2.dev)
	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}

	return &Client{
		s3:        s3.NewFromConfig(awsCfg),
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Put stores an object. Durable on success. Single attempt; retrying is
// the caller's decision.
func (c *Client) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

// PublicURL implements links.Locator.
func (c *Client) PublicURL(key string) string {
	return c.publicURL + "/" + key
}
