package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignAPI is the subset of the S3 presign client used here.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Downloader hands out short-lived URLs for objects in the private bucket.
type Downloader struct {
	presign PresignAPI
	bucket  string
	ttl     time.Duration
}

// NewDownloader creates a downloader. ttl bounds how long issued URLs live.
func NewDownloader(presign PresignAPI, bucket string, ttl time.Duration) *Downloader {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Downloader{presign: presign, bucket: bucket, ttl: ttl}
}

// Enabled reports whether the bucket integration is configured.
func (d *Downloader) Enabled() bool {
	return d != nil && d.presign != nil && d.bucket != ""
}

// DownloadURL presigns a GET for one resource, forcing a sensible filename
// on the browser side.
func (d *Downloader) DownloadURL(ctx context.Context, res *Resource) (string, error) {
	if !d.Enabled() {
		return "", fmt.Errorf("resources: downloads not configured")
	}

	input := &s3.GetObjectInput{
		Bucket:                     aws.String(d.bucket),
		Key:                        aws.String(res.ObjectKey),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", res.FileName)),
	}
	if res.ContentType != "" {
		input.ResponseContentType = aws.String(res.ContentType)
	}

	req, err := d.presign.PresignGetObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = d.ttl
	})
	if err != nil {
		return "", fmt.Errorf("resources: presign %s: %w", res.ObjectKey, err)
	}
	return req.URL, nil
}
