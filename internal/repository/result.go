package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vancomm/sweeper/internal/mines"
)

// GameResult is the outcome of a finished game. The board itself is never
// stored.
type GameResult struct {
	GameResultId int64     `db:"game_result_id" json:"game_result_id"`
	Width        int       `db:"width" json:"width"`
	Height       int       `db:"height" json:"height"`
	MineCount    int       `db:"mine_count" json:"mine_count"`
	Won          bool      `db:"won" json:"won"`
	StartedAt    time.Time `db:"started_at" json:"started_at"`
	EndedAt      time.Time `db:"ended_at" json:"ended_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateGameResultParams struct {
	mines.GameParams
	Won       bool
	StartedAt time.Time
	EndedAt   time.Time
}

func (q Queries) CreateGameResult(
	ctx context.Context, params CreateGameResultParams,
) (*GameResult, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_result (
			width, height, mine_count, won, started_at, ended_at
		)
		VALUES (
			@width, @height, @mine_count, @won, @started_at, @ended_at
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"width":      params.Width,
			"height":     params.Height,
			"mine_count": params.MineCount,
			"won":        params.Won,
			"started_at": params.StartedAt,
			"ended_at":   params.EndedAt,
		},
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameResult],
	)
}

type BestTime struct {
	GameResultId int64   `db:"game_result_id" json:"game_result_id"`
	Width        int     `db:"width" json:"width"`
	Height       int     `db:"height" json:"height"`
	MineCount    int     `db:"mine_count" json:"mine_count"`
	PlaytimeMs   float64 `db:"playtime_ms" json:"playtime_ms"`
}

type BestTimeFilter struct {
	GameParams *mines.GameParams
	Limit      int
}

func (f BestTimeFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.GameParams.Width
		args["height"] = f.GameParams.Height
		args["mineCount"] = f.GameParams.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetBestTimes(
	ctx context.Context, filter BestTimeFilter,
) ([]BestTime, error) {
	query := `
	SELECT
		game_result_id,
		width,
		height,
		mine_count,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM game_result
	WHERE won = true
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}
	query += ";"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[BestTime])
}
