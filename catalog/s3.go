package catalog

import (
	"mime"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/glowbooth/media-export/common"
	"github.com/glowbooth/media-export/common/config"
	"github.com/glowbooth/media-export/common/rcontext"
	"github.com/glowbooth/media-export/metrics"
)

// S3Source lists booth media out of an S3-compatible bucket and hands back
// presigned GET URLs so the fetcher never needs bucket credentials.
type S3Source struct {
	client    *minio.Client
	bucket    string
	prefix    string
	urlExpiry time.Duration
}

func NewS3Source(conf config.CatalogConfig) (*S3Source, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyId, conf.AccessSecret, ""),
		Secure: conf.Ssl,
		Region: conf.Region,
	})
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(conf.UrlExpirySeconds) * time.Second
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &S3Source{
		client:    client,
		bucket:    conf.Bucket,
		prefix:    conf.Prefix,
		urlExpiry: expiry,
	}, nil
}

func (s *S3Source) List(ctx rcontext.RequestContext) ([]MediaDescriptor, error) {
	metrics.CatalogOperations.With(map[string]string{"operation": "list"}).Inc()

	listing := make([]MediaDescriptor, 0)
	objects := s.client.ListObjects(ctx.Context, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue // directory marker
		}

		contentType := obj.ContentType
		if contentType == "" {
			contentType = mime.TypeByExtension(path.Ext(obj.Key))
		}

		metrics.CatalogOperations.With(map[string]string{"operation": "presign"}).Inc()
		signedUrl, err := s.client.PresignedGetObject(ctx.Context, s.bucket, obj.Key, s.urlExpiry, nil)
		if err != nil {
			ctx.Log.Warnf("Could not presign %s - excluding from listing: %s", obj.Key, err)
			continue
		}

		listing = append(listing, MediaDescriptor{
			Id:          obj.Key,
			DisplayName: path.Base(obj.Key),
			ContentUrl:  signedUrl.String(),
			Kind:        common.KindForContentType(contentType),
			ContentType: contentType,
			SizeBytes:   obj.Size,
			CreatedTs:   obj.LastModified.UnixNano() / 1000000,
		})
	}

	return listing, nil
}
