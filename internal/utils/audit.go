package utils

import (
	"context"
	"sync"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NumeroSinistro string             `bson:"numero_sinistro,omitempty" json:"numero_sinistro,omitempty"`
	Action         string             `bson:"action" json:"action"`
	Resource       string             `bson:"resource" json:"resource"`
	ResourceID     string             `bson:"resource_id" json:"resource_id"`
	OldValue       interface{}        `bson:"old_value,omitempty" json:"old_value,omitempty"`
	NewValue       interface{}        `bson:"new_value,omitempty" json:"new_value,omitempty"`
	UserID         string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	IPAddress      string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent      string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RequestID      string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata       map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Audit constants
const (
	AuditActionCreate   = "CREATE"
	AuditActionRead     = "READ"
	AuditActionUpdate   = "UPDATE"
	AuditActionValidate = "VALIDATE"
	AuditActionLogin    = "LOGIN"

	AuditResourceSinistro       = "sinistro"
	AuditResourceStatus         = "status"
	AuditResourceCompletionLink = "completion_link"
	AuditResourceFoto           = "foto"
	AuditResourceUser           = "user"
)

// AuditContext contains context information for audit logging
type AuditContext struct {
	NumeroSinistro string
	UserID         string
	IPAddress      string
	UserAgent      string
	RequestID      string
}

// AuditWorker manages asynchronous audit logging
type AuditWorker struct {
	auditChan chan AuditLog
	workers   int
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

var (
	auditWorker *AuditWorker
	once        sync.Once
)

// InitAuditWorker initializes the audit worker
func InitAuditWorker(workers int, bufferSize int) {
	once.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		auditWorker = &AuditWorker{
			auditChan: make(chan AuditLog, bufferSize),
			workers:   workers,
			ctx:       ctx,
			cancel:    cancel,
		}
		auditWorker.start()
	})
}

func (aw *AuditWorker) start() {
	aw.wg.Add(aw.workers)

	for i := 0; i < aw.workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processAuditLogs()
		}()
	}

	logging.Logger.Info("audit worker started",
		zap.Int("workers", aw.workers),
		zap.Int("buffer_size", cap(aw.auditChan)))
}

// processAuditLogs drains the channel and writes entries in batches
func (aw *AuditWorker) processAuditLogs() {
	batchTicker := time.NewTicker(100 * time.Millisecond)
	defer batchTicker.Stop()

	var batch []AuditLog
	batchSize := 100

	for {
		select {
		case auditLog, ok := <-aw.auditChan:
			if !ok {
				if len(batch) > 0 {
					aw.flushBatch(batch)
				}
				return
			}
			batch = append(batch, auditLog)
			if len(batch) >= batchSize {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		case <-batchTicker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// flushBatch bulk-inserts a batch of audit logs. Failures are logged and
// discarded; audit logging never blocks the primary path.
func (aw *AuditWorker) flushBatch(batch []AuditLog) {
	if len(batch) == 0 {
		return
	}

	logger := logging.Logger.With(
		zap.Int("batch_size", len(batch)),
		zap.String("operation", "audit_batch_insert"),
	)

	var operations []mongo.WriteModel
	for _, log := range batch {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(log))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.BulkWrite().SetOrdered(false)

	result, err := config.MongoDB.Collection(config.AppConfig.AuditCollection).BulkWrite(ctx, operations, opts)
	if err != nil {
		logger.Error("failed to insert audit log batch", zap.Error(err))
		return
	}

	logger.Debug("audit log batch inserted",
		zap.Int64("inserted", result.InsertedCount))
}

// Stop stops the audit worker
func (aw *AuditWorker) Stop() {
	if aw != nil {
		aw.cancel()
		close(aw.auditChan)
		aw.wg.Wait()
	}
}

// GetAuditWorker returns the global audit worker instance
func GetAuditWorker() *AuditWorker {
	return auditWorker
}

// LogAuditEvent queues an audit event for asynchronous insertion. When the
// worker is missing or its buffer is full the event is written synchronously;
// either way the caller's operation is never failed by auditing.
func LogAuditEvent(ctx context.Context, auditCtx AuditContext, action, resource, resourceID string, oldValue, newValue interface{}, metadata map[string]string) {
	auditLog := AuditLog{
		NumeroSinistro: auditCtx.NumeroSinistro,
		Action:         action,
		Resource:       resource,
		ResourceID:     resourceID,
		OldValue:       oldValue,
		NewValue:       newValue,
		UserID:         auditCtx.UserID,
		IPAddress:      auditCtx.IPAddress,
		UserAgent:      auditCtx.UserAgent,
		RequestID:      auditCtx.RequestID,
		Timestamp:      time.Now(),
		Metadata:       metadata,
	}

	if auditWorker == nil {
		logAuditEventSync(auditLog)
		return
	}

	select {
	case auditWorker.auditChan <- auditLog:
	default:
		logging.Logger.Warn("audit channel full, falling back to synchronous logging",
			zap.String("action", action),
			zap.String("resource", resource))
		logAuditEventSync(auditLog)
	}
}

func logAuditEventSync(auditLog AuditLog) {
	if config.MongoDB == nil {
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := config.MongoDB.Collection(config.AppConfig.AuditCollection).InsertOne(dbCtx, auditLog)
	if err != nil {
		logging.Logger.Error("failed to insert audit log",
			zap.String("action", auditLog.Action),
			zap.String("resource", auditLog.Resource),
			zap.Error(err))
	}
}
