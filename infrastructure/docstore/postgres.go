package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/infrastructure/database/postgres"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	documentsTable = "documents"
	notifyChannel  = "cafe_documents"
)

// PostgresStore implementa Store sobre uma única tabela JSONB, com
// LISTEN/NOTIFY para o push em tempo real.
type PostgresStore struct {
	conn *postgres.Connection

	mu          sync.Mutex
	subscribers map[string][]chan Snapshot
	listener    *changeListener
}

func NewPostgresStore(conn *postgres.Connection) *PostgresStore {
	return &PostgresStore{
		conn:        conn,
		subscribers: make(map[string][]chan Snapshot),
	}
}

// Start prepara o esquema e liga o listener de notificações. onFatal é chamado
// quando o canal de notificações cai: o acesso ao store é fatal para a sessão,
// não há política de retry.
func (s *PostgresStore) Start(ctx context.Context, onFatal func(error)) error {
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("erro ao preparar o esquema do document store: %w", err)
	}

	listener, err := newChangeListener(s.conn.DSN(), notifyChannel, onFatal)
	if err != nil {
		return fmt.Errorf("erro ao iniciar o listener de notificações: %w", err)
	}
	s.listener = listener

	go s.dispatchLoop(ctx)

	return nil
}

// ensureSchema cria a tabela de documentos e o gatilho de notificação.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection  TEXT        NOT NULL,
			key         TEXT        NOT NULL,
			doc         JSONB       NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection, key)
		)`,
		`CREATE OR REPLACE FUNCTION notify_document_change() RETURNS trigger AS $$
		BEGIN
			IF TG_OP = 'DELETE' THEN
				PERFORM pg_notify('cafe_documents', OLD.collection);
				RETURN OLD;
			END IF;
			PERFORM pg_notify('cafe_documents', NEW.collection);
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS documents_notify ON documents`,
		`CREATE TRIGGER documents_notify
			AFTER INSERT OR UPDATE OR DELETE ON documents
			FOR EACH ROW EXECUTE FUNCTION notify_document_change()`,
	}

	for _, stmt := range statements {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// dispatchLoop reenvia cada notificação como um snapshot completo da coleção
// para os assinantes registrados.
func (s *PostgresStore) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.closeSubscribers()
			return
		case collection, ok := <-s.listener.Notifications():
			if !ok {
				s.closeSubscribers()
				return
			}
			s.publish(ctx, collection)
		}
	}
}

func (s *PostgresStore) publish(ctx context.Context, collection string) {
	s.mu.Lock()
	targets := append([]chan Snapshot(nil), s.subscribers[collection]...)
	s.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	snapshot, err := s.List(ctx, collection)
	if err != nil {
		logrus.WithError(err).WithField("collection", collection).
			Error("Erro ao montar snapshot para os assinantes")
		return
	}

	for _, ch := range targets {
		select {
		case ch <- snapshot:
		default:
			// Assinante lento: descarta este snapshot; o próximo evento da
			// coleção entrega o estado mais recente de qualquer forma.
			logrus.WithField("collection", collection).
				Warn("Assinante lento, snapshot descartado")
		}
	}
}

func (s *PostgresStore) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chans := range s.subscribers {
		for _, ch := range chans {
			close(ch)
		}
	}
	s.subscribers = make(map[string][]chan Snapshot)
}

// Subscribe registra o assinante e entrega o snapshot corrente imediatamente.
func (s *PostgresStore) Subscribe(ctx context.Context, collection string) (<-chan Snapshot, error) {
	snapshot, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	ch := make(chan Snapshot, 1)
	ch <- snapshot

	s.mu.Lock()
	s.subscribers[collection] = append(s.subscribers[collection], ch)
	s.mu.Unlock()

	return ch, nil
}

func (s *PostgresStore) Set(ctx context.Context, collection, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("erro ao serializar documento %s/%s: %w", collection, key, err)
	}

	sqlQuery, args, err := squirrel.
		Insert(documentsTable).
		Columns("collection", "key", "doc").
		Values(collection, key, payload).
		Suffix(`ON CONFLICT (collection, key) DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = CURRENT_TIMESTAMP`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de upsert: %w", err)
	}

	if _, err := s.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao gravar documento %s/%s: %w", collection, key, err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, key string) error {
	sqlQuery, args, err := squirrel.
		Delete(documentsTable).
		Where(squirrel.Eq{"collection": collection, "key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	if _, err := s.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao remover documento %s/%s: %w", collection, key, err)
	}

	return nil
}

// BatchSet grava todos os documentos em uma única transação.
func (s *PostgresStore) BatchSet(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO documents (collection, key, doc)
			VALUES ($1, $2, $3)
			ON CONFLICT (collection, key) DO UPDATE SET
				doc = EXCLUDED.doc,
				updated_at = CURRENT_TIMESTAMP`)
		if err != nil {
			return fmt.Errorf("erro ao preparar statement do lote: %w", err)
		}
		defer stmt.Close()

		for _, doc := range docs {
			payload, err := json.Marshal(doc.Value)
			if err != nil {
				return fmt.Errorf("erro ao serializar documento %s/%s: %w", collection, doc.Key, err)
			}
			if _, err := stmt.ExecContext(ctx, collection, doc.Key, payload); err != nil {
				return fmt.Errorf("erro ao gravar documento %s/%s: %w", collection, doc.Key, err)
			}
		}

		return nil
	})
}

func (s *PostgresStore) List(ctx context.Context, collection string) (Snapshot, error) {
	sqlQuery, args, err := squirrel.
		Select("key", "doc").
		From(documentsTable).
		Where(squirrel.Eq{"collection": collection}).
		OrderBy("key ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de listagem: %w", err)
	}

	rows, err := s.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar coleção %s: %w", collection, err)
	}
	defer rows.Close()

	snapshot := make(Snapshot)
	for rows.Next() {
		var key string
		var doc []byte
		if err := rows.Scan(&key, &doc); err != nil {
			return nil, fmt.Errorf("erro ao escanear documento: %w", err)
		}
		snapshot[key] = doc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshot, nil
}
