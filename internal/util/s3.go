package util

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/minio/minio-go/v7"
)

func GetSignatureTemplateDirectoryPath() string {
	return "signatures/templates"
}

func createBucketIfNotExists(s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(context.Background(), bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

type FileUploadOptions struct {
	// Prefixed to the object name. For example, file "sig.png" with directory
	// path "signatures/templates" becomes "signatures/templates/sig.png".
	DirectoryPath string
	UniquePrefix  bool
	Bucket        string
	S3            *minio.Client
}

func UploadFileToS3ByFileHeader(fileHeader *multipart.FileHeader, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileName := prepareFileName(fileHeader.Filename, fuo)

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DetectContentType(fileHeader.Filename)
	}

	info, err := fuo.S3.PutObject(
		context.Background(),
		fuo.Bucket,
		fileName,
		file,
		fileHeader.Size,
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// DownloadFileFromS3ToTemp fetches an object into a temp file and returns its
// path. Caller removes the file when done.
func DownloadFileFromS3ToTemp(ctx context.Context, s3 *minio.Client, bucket, objectName string) (string, error) {
	ext := filepath.Ext(objectName)
	tmpFile, err := CreateTemp("clearance_sig_*" + ext)
	if err != nil {
		return "", err
	}
	tmpFile.Close()

	if err := s3.FGetObject(ctx, bucket, objectName, tmpFile.Name(), minio.GetObjectOptions{}); err != nil {
		return "", fmt.Errorf("failed to download object %s: %w", objectName, err)
	}

	return tmpFile.Name(), nil
}

// Generates the final file name with uniqueness and prefix
func prepareFileName(originalName string, fuo *FileUploadOptions) string {
	fileName := originalName

	if fuo != nil {
		if fuo.UniquePrefix {
			fileName = AddUniquePrefixToFileName(originalName)
		}

		if fuo.DirectoryPath != "" {
			fileName = filepath.Join(fuo.DirectoryPath, fileName)
		}
	}

	return fileName
}

// Determines the content type by file extension, defaulting to octet-stream.
func DetectContentType(path string) string {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return contentType
}
