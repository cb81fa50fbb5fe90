package database

import (
	"context"
	"fmt"
	"time"

	ierr "go-smartshop/internal/errors"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultWriteTimeout = time.Second * 120

type FirestoreClient struct {
	*firestore.Client
	writeTimeout time.Duration
}

var _ Client = FirestoreClient{}

func New(client *firestore.Client, writeTimeout time.Duration) FirestoreClient {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return FirestoreClient{
		Client:       client,
		writeTimeout: writeTimeout,
	}
}

func (c FirestoreClient) GetDoc(ctx context.Context, path string, v interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	docSnapshot, err := c.Client.Doc(path).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ierr.NotFound
		}
		return err
	}

	if !docSnapshot.Exists() {
		return ierr.NotFound
	}

	return docSnapshot.DataTo(v)
}

func (c FirestoreClient) SetDoc(ctx context.Context, path string, data interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	docRef := c.Client.Doc(path)
	if docRef == nil {
		return fmt.Errorf("invalid document path %q", path)
	}

	_, err := docRef.Set(ctx, data)
	return err
}

// DeleteDoc removes the document together with its subcollections.
func (c FirestoreClient) DeleteDoc(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	docRef := c.Client.Doc(path)
	if docRef == nil {
		return fmt.Errorf("invalid document path %q", path)
	}

	return c.deleteDoc(ctx, docRef)
}

func (c FirestoreClient) deleteDoc(ctx context.Context, docRef *firestore.DocumentRef) error {
	colls, err := docRef.Collections(ctx).GetAll()
	if err != nil {
		log.Error().Err(err).Msgf("failed to get all collections of the doc %s", docRef.Path)
		return err
	}

	for _, collRef := range colls {
		// must not be concurrent otherwise subcolls will not be cleaned up due to context cancellation
		if err := c.deleteColl(ctx, collRef); err != nil {
			return err
		}
	}

	_, err = docRef.Delete(ctx)
	return err
}

func (c FirestoreClient) deleteColl(ctx context.Context, collRef *firestore.CollectionRef) error {
	docs := collRef.Documents(ctx)
	defer docs.Stop()
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := c.deleteDoc(ctx, doc.Ref); err != nil {
			return err
		}
	}
}
