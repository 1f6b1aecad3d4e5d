package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxUploadSize caps a single uploaded file at 10MB.
const MaxUploadSize = 10 << 20

var ErrUnsupportedType = errors.New("images and videos only")
var ErrFileTooLarge = errors.New("file exceeds the 10MB upload limit")
var ErrNotFound = errors.New("no file found")

// Allowed extensions and the declared MIME types that go with them.
var allowedExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".mp4":  true,
	".webm": true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"video/mp4":  true,
	"video/webm": true,
}

// MediaStore wraps a GridFS bucket. It is constructed once after the DB
// connection is up and handed to the handlers, instead of being a module
// global that waits on a connection event.
type MediaStore struct {
	bucket *gridfs.Bucket
	files  *mongo.Collection
}

// StoredFile is the subset of the GridFS file document the media handler
// needs to build response headers.
type StoredFile struct {
	Filename string `bson:"filename"`
	Length   int64  `bson:"length"`
	Metadata struct {
		ContentType string `bson:"contentType"`
	} `bson:"metadata"`
}

func NewMediaStore(db *mongo.Database) (*MediaStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("uploads"))
	if err != nil {
		return nil, err
	}
	return &MediaStore{
		bucket: bucket,
		files:  db.Collection("uploads.files"),
	}, nil
}

// CheckFileType verifies both the extension and the declared MIME type
// against the allow-list.
func CheckFileType(filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExts[ext] && allowedContentTypes[strings.ToLower(contentType)]
}

// RandomFilename returns a 16-byte hex name carrying the original
// (lowercased) extension.
func RandomFilename(original string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + strings.ToLower(filepath.Ext(original)), nil
}

// Save validates an uploaded file and streams it into GridFS under a fresh
// random name. It returns the /uploads/... path reference that gets embedded
// in user and review documents. Nothing is written when validation fails.
func (s *MediaStore) Save(fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if !CheckFileType(fh.Filename, contentType) {
		return "", ErrUnsupportedType
	}
	if fh.Size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	filename, err := RandomFilename(fh.Filename)
	if err != nil {
		return "", err
	}

	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := s.bucket.SetWriteDeadline(time.Now().Add(30 * time.Second)); err != nil {
		return "", err
	}

	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	if _, err := s.bucket.UploadFromStream(filename, file, uploadOpts); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}

// Stat looks up the GridFS file document by filename.
func (s *MediaStore) Stat(filename string) (*StoredFile, error) {
	ctx, cancel := contextWithTimeout()
	defer cancel()

	var file StoredFile
	err := s.files.FindOne(ctx, bson.M{"filename": filename}).Decode(&file)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// Open returns a read stream for the stored blob.
func (s *MediaStore) Open(filename string) (*gridfs.DownloadStream, error) {
	if err := s.bucket.SetReadDeadline(time.Now().Add(30 * time.Second)); err != nil {
		return nil, err
	}
	stream, err := s.bucket.OpenDownloadStreamByName(filename)
	if err == gridfs.ErrFileNotFound {
		return nil, ErrNotFound
	}
	return stream, err
}
