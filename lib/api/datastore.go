package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nicolasacquaviva/cuerre-gen/lib/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by a Store for unknown or malformed ids.
var ErrNotFound = errors.New("file not found")

type FileMetadata struct {
	Extension string    `bson:"extension" json:"extension"`
	Type      string    `bson:"type" json:"type"`
	Content   string    `bson:"content,omitempty" json:"content,omitempty"`
	ECLevel   string    `bson:"ecLevel,omitempty" json:"ecLevel,omitempty"`
	LastRead  time.Time `bson:"lastRead,omitempty" json:"lastRead,omitempty"`
}

type File struct {
	Id         string       `json:"_id"`
	Filename   string       `json:"filename"`
	Length     int64        `json:"length"`
	Metadata   FileMetadata `json:"metadata"`
	UploadDate time.Time    `json:"uploadDate"`
}

// Store keeps generated images.
type Store interface {
	Put(ctx context.Context, filename string, r io.Reader, meta FileMetadata) (string, error)
	Get(ctx context.Context, id string, w io.Writer) (*File, error)
	// Stat returns the stored document without reading the file or
	// touching lastRead.
	Stat(ctx context.Context, id string) (*File, error)
}

// Datastore is a Store backed by a GridFS bucket.
type Datastore struct {
	DB        *mongo.Client
	FileStore *gridfs.Bucket
	Name      string
}

// gridFile mirrors a fs.files document.
type gridFile struct {
	Id         primitive.ObjectID `bson:"_id"`
	Filename   string             `bson:"filename"`
	Length     int64              `bson:"length"`
	Metadata   FileMetadata       `bson:"metadata"`
	UploadDate time.Time          `bson:"uploadDate"`
}

func NewDatastore(ctx context.Context, uri, database string) (*Datastore, error) {
	client, err := db.NewMongoClient(ctx, uri)

	if err != nil {
		return nil, err
	}

	bucket, err := db.NewGridFsBucket(client, database)

	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Datastore{
		DB:        client,
		FileStore: bucket,
		Name:      database,
	}, nil
}

func (ds *Datastore) Close(ctx context.Context) error {
	return ds.DB.Disconnect(ctx)
}

func (ds *Datastore) files() *mongo.Collection {
	return ds.DB.Database(ds.Name).Collection("fs.files")
}

func (ds *Datastore) Put(ctx context.Context, filename string, r io.Reader, meta FileMetadata) (string, error) {
	uploadOpts := options.GridFSUpload().SetMetadata(bson.D{{
		Key:   "extension",
		Value: meta.Extension,
	}, {
		Key:   "type",
		Value: meta.Type,
	}, {
		Key:   "content",
		Value: meta.Content,
	}, {
		Key:   "ecLevel",
		Value: meta.ECLevel,
	}})

	fileId, err := ds.FileStore.UploadFromStream(filename, r, uploadOpts)

	if err != nil {
		return "", fmt.Errorf("error uploading to GridFS: %w", err)
	}

	return fileId.Hex(), nil
}

// find loads the fs.files document of a stored QR.
func (ds *Datastore) find(ctx context.Context, id string) (primitive.ObjectID, *gridFile, error) {
	_id, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return _id, nil, ErrNotFound
	}

	var file gridFile

	// get gridfs document for the requested file id
	err = ds.files().FindOne(
		ctx,
		bson.D{{
			Key:   "_id",
			Value: _id,
		}, {
			Key:   "metadata.type",
			Value: fileTypeQR,
		}},
	).Decode(&file)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return _id, nil, ErrNotFound
	}

	if err != nil {
		return _id, nil, fmt.Errorf("error finding file: %w", err)
	}

	return _id, &file, nil
}

func (f *gridFile) toFile() *File {
	return &File{
		Id:         f.Id.Hex(),
		Filename:   f.Filename,
		Length:     f.Length,
		Metadata:   f.Metadata,
		UploadDate: f.UploadDate,
	}
}

func (ds *Datastore) Stat(ctx context.Context, id string) (*File, error) {
	_, file, err := ds.find(ctx, id)

	if err != nil {
		return nil, err
	}

	return file.toFile(), nil
}

func (ds *Datastore) Get(ctx context.Context, id string, w io.Writer) (*File, error) {
	_id, file, err := ds.find(ctx, id)

	if err != nil {
		return nil, err
	}

	if _, err = ds.FileStore.DownloadToStream(_id, w); err != nil {
		return nil, fmt.Errorf("error downloading file: %w", err)
	}

	now := time.Now().UTC()

	// set last read
	_, err = ds.files().UpdateByID(
		ctx,
		_id,
		bson.D{
			bson.E{
				Key: "$set",
				Value: bson.D{{
					Key:   "metadata.lastRead",
					Value: now,
				}},
			},
		},
	)

	if err != nil {
		return nil, fmt.Errorf("error updating qr with last read: %w", err)
	}

	file.Metadata.LastRead = now

	return file.toFile(), nil
}
