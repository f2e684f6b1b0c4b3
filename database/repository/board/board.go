package boardRepo

import (
	"context"
	"errors"

	"bizhub/models"
)

var ErrActionNotFound = errors.New("board action not found")

// BoardRepository defines data access for service board actions.
type BoardRepository interface {
	Create(ctx context.Context, action *models.BoardAction) error
	GetByID(ctx context.Context, id string) (*models.BoardAction, error)
	Update(ctx context.Context, action *models.BoardAction) error
	// CountByType counts actions of one type already attached to a board.
	CountByType(ctx context.Context, businessID, boardRef, actionType string) (int, error)
	ListByBoard(ctx context.Context, businessID, boardRef string) ([]models.BoardAction, error)
}
