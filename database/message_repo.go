package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const messageTable = "messages"

var messageColumns = []string{
	"id", "name", "email", "subject", "message", "read", "created_at", "updated_at",
}

var messageUpdateColumns = map[string]string{
	"read": "read",
}

type MessageRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewMessageRepo(engine Engine) *MessageRepo {
	return &MessageRepo{
		engine: engine,
		logger: log.With().Str("repo", "messageRepo").Logger(),
	}
}

func scanMessage(s scanner) (models.Message, error) {
	var m models.Message
	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Read, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// List returns one page of contact messages, newest first.
func (r *MessageRepo) List(ctx context.Context, filter models.MessageFilter) (*models.Page[models.Message], error) {
	page, pageSize := NormalizePage(filter.Page, filter.PageSize, defaultPageSize)

	q := SelectQuery{
		Table:    messageTable,
		Columns:  messageColumns,
		OrderBy:  newestFirst,
		Page:     page,
		PageSize: pageSize,
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		q.Where = append(q.Where, Search(term, "name", "email", "message"))
	}
	if filter.Read != nil {
		q.Where = append(q.Where, Flag("read", *filter.Read))
	}

	result, err := listPage(ctx, r.engine, q, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return result, nil
}

func (r *MessageRepo) FindByID(ctx context.Context, id string) (*models.Message, error) {
	return r.findByID(ctx, r.engine, id)
}

func (r *MessageRepo) findByID(ctx context.Context, engine Engine, id string) (*models.Message, error) {
	stmt, args := SelectQuery{
		Table:   messageTable,
		Columns: messageColumns,
		Where:   []Predicate{Equals("id", id)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "message", stmt, args, scanMessage)
}

// Add stores a contact form submission as unread.
func (r *MessageRepo) Add(ctx context.Context, msg models.Message) (*models.Message, error) {
	if err := requireText("name", msg.Name); err != nil {
		return nil, err
	}
	if err := requireText("email", msg.Email); err != nil {
		return nil, err
	}
	if err := requireText("message", msg.Message); err != nil {
		return nil, err
	}

	ts := now()
	msg.ID = uuid.NewString()
	fields := []Field{
		{Name: "id", Value: msg.ID},
		{Name: "name", Value: msg.Name},
		{Name: "email", Value: msg.Email},
		{Name: "subject", Value: msg.Subject},
		{Name: "message", Value: msg.Message},
		{Name: "read", Kind: KindBool, Value: false},
		{Name: "created_at", Value: ts},
		{Name: "updated_at", Value: ts},
	}

	created, err := insertAndReload(ctx, r.engine, "message", messageTable, fields, func(conn Engine) (*models.Message, error) {
		return r.findByID(ctx, conn, msg.ID)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info().Str("messageId", created.ID).Msg("message received")
	return created, nil
}

// Update writes the set fields of patch. An empty patch returns
// errs.ErrNoChanges without checking that id exists.
func (r *MessageRepo) Update(ctx context.Context, id string, patch models.MessagePatch) (*models.Message, error) {
	fields := appendField(nil, "read", KindBool, patch.Read)
	return updateAndReload(ctx, r.engine, "message", messageTable, messageUpdateColumns, fields, id, func(conn Engine) (*models.Message, error) {
		return r.findByID(ctx, conn, id)
	})
}

func (r *MessageRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteByID(ctx, r.engine, messageTable, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	return deleted, nil
}

// UnreadCount returns how many messages have not been marked read.
func (r *MessageRepo) UnreadCount(ctx context.Context) (int, error) {
	stmt, args := SelectQuery{
		Table: messageTable,
		Where: []Predicate{Flag("read", false)},
	}.BuildCount(r.engine.Dialect())

	var count int64
	if err := r.engine.QueryOne(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return int(count), nil
}
