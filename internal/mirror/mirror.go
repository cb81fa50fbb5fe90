package mirror

import (
	"context"
	"fmt"
	"time"

	"go-smartshop/internal/database"
	"go-smartshop/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// LocalStore is the part of the product store the mirror reports back to.
type LocalStore interface {
	GetById(id string) (model.ProductEntity, bool)
	GetUnsynced() []model.ProductEntity
	MarkSynced(id string, version time.Time) bool
}

// CloudMirror replicates one user's products to users/{userId}/products.
// Writes are whole-document overwrites with no conflict detection. Remote
// writes for the same product run one at a time, in the order they were
// requested.
type CloudMirror struct {
	db         database.Client
	store      LocalStore
	userId     string
	operations *prometheus.CounterVec
	queue      *keyedQueue
}

func New(db database.Client, store LocalStore, userId string, operations *prometheus.CounterVec) *CloudMirror {
	return &CloudMirror{
		db:         db,
		store:      store,
		userId:     userId,
		operations: operations,
		queue:      newKeyedQueue(),
	}
}

// Schedule queues a push of the record behind every write already queued for
// the same product. The returned channel is closed once the push has run.
func (m *CloudMirror) Schedule(ctx context.Context, product model.ProductEntity) <-chan struct{} {
	return m.queue.enqueue(product.Id, func() {
		m.push(ctx, product)
	})
}

// Push writes the record once. On success the local copy is flagged as synced;
// a failure is logged and otherwise dropped, nothing retries it.
func (m *CloudMirror) Push(ctx context.Context, product model.ProductEntity) {
	<-m.Schedule(ctx, product)
}

// Delete removes the remote copy once the pending writes of the product have
// run. Unlike Push, the error is returned.
func (m *CloudMirror) Delete(ctx context.Context, id string) error {
	var err error
	<-m.queue.enqueue(id, func() {
		err = m.delete(ctx, id)
	})
	return err
}

// SyncUnsynced pushes every unsynced record one after another. Individual
// failures are not reported; only a cancelled ctx stops the pass early.
// Each record is re-read when its turn comes, so a push never sends a
// version older than one already queued.
func (m *CloudMirror) SyncUnsynced(ctx context.Context) error {
	unsynced := m.store.GetUnsynced()
	log.Debug().Msgf("mirror: syncing %d unsynced products", len(unsynced))

	for _, product := range unsynced {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := product.Id
		<-m.queue.enqueue(id, func() {
			current, ok := m.store.GetById(id)
			if !ok || current.SyncedWithCloud {
				return
			}
			m.push(ctx, current)
		})
	}

	return nil
}

func (m *CloudMirror) push(ctx context.Context, product model.ProductEntity) {
	if err := m.db.SetDoc(ctx, m.docPath(product.Id), product.ToDoc()); err != nil {
		m.count(opPush, resultFailed)
		log.Error().Err(err).Msgf("mirror: failed to push product %s", product.Id)
		return
	}

	m.count(opPush, resultOk)
	if !m.store.MarkSynced(product.Id, product.UpdatedAt) {
		log.Debug().Msgf("mirror: product %s changed or vanished during push", product.Id)
	}
}

func (m *CloudMirror) delete(ctx context.Context, id string) error {
	if err := m.db.DeleteDoc(ctx, m.docPath(id)); err != nil {
		m.count(opDelete, resultFailed)
		return fmt.Errorf("mirror delete: %w, id: %s", err, id)
	}

	m.count(opDelete, resultOk)
	return nil
}

// Remote reads the mirrored copy of a product.
func (m *CloudMirror) Remote(ctx context.Context, id string) (model.Product, error) {
	doc := model.ProductDoc{}
	if err := m.db.GetDoc(ctx, m.docPath(id), &doc); err != nil {
		return model.Product{}, fmt.Errorf("mirror get: %w, id: %s", err, id)
	}
	return doc.ToDomain(), nil
}

func (m *CloudMirror) docPath(productId string) string {
	return fmt.Sprintf("%s/%s/%s/%s", usersNode, m.userId, productsNode, productId)
}

func (m *CloudMirror) count(op, result string) {
	if m.operations != nil {
		m.operations.WithLabelValues(op, result).Inc()
	}
}
