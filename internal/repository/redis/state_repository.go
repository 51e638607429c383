package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

var ErrBoardNotFound = errors.New("board snapshot not found")

type redisStateRepository struct {
	cli    *redis.Client
	branch string
	l      logger.Logger
}

func NewRedisStateRepository(cli *redis.Client, branch string, l logger.Logger) StateRepository {
	return &redisStateRepository{
		cli:    cli,
		branch: branch,
		l:      l,
	}
}

func (r *redisStateRepository) PublishChange(ctx context.Context, c models.StateChange) error {
	val, err := json.Marshal(c)
	if err != nil {
		r.l.Errorf(ctx, "redisStateRepository.PublishChange: %v", err)
		return err
	}

	if err := r.cli.Publish(ctx, r.ChangesChannel(), val).Err(); err != nil {
		r.l.Errorf(ctx, "redisStateRepository.PublishChange: %v", err)
		return err
	}

	r.l.Debug(ctx, "Published state change",
		"branch", r.branch,
		"revision", c.Revision,
		"type", c.Type,
	)

	return nil
}

func (r *redisStateRepository) SaveBoard(ctx context.Context, b models.Board, ttl time.Duration) error {
	val, err := json.Marshal(b)
	if err != nil {
		r.l.Errorf(ctx, "redisStateRepository.SaveBoard: %v", err)
		return err
	}

	if err := r.cli.Set(ctx, r.boardKey(), val, ttl).Err(); err != nil {
		r.l.Errorf(ctx, "redisStateRepository.SaveBoard: %v", err)
		return err
	}

	return nil
}

func (r *redisStateRepository) LoadBoard(ctx context.Context) (*models.Board, error) {
	val, err := r.cli.Get(ctx, r.boardKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrBoardNotFound
		}
		r.l.Errorf(ctx, "redisStateRepository.LoadBoard: %v", err)
		return nil, err
	}

	var b models.Board
	if err := json.Unmarshal(val, &b); err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}
	return &b, nil
}

func (r *redisStateRepository) ChangesChannel() string {
	return fmt.Sprintf("branchqueue:%s:changes", r.branch)
}

func (r *redisStateRepository) boardKey() string {
	return fmt.Sprintf("branchqueue:%s:board", r.branch)
}
