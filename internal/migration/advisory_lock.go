package migration

import (
	"database/sql"
	"errors"
	"fmt"
)

const advisoryLockKey int64 = 7_514_220_943

type unlockFunc func() error

func acquireAdvisoryLock(db *sql.DB) (unlockFunc, error) {
	var locked bool
	if err := db.QueryRow("SELECT pg_try_advisory_lock($1)", advisoryLockKey).Scan(&locked); err != nil {
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another migration process holds the advisory lock")
	}

	return func() error {
		var released bool
		if err := db.QueryRow("SELECT pg_advisory_unlock($1)", advisoryLockKey).Scan(&released); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		if !released {
			return errors.New("advisory lock was not held by this session")
		}
		return nil
	}, nil
}
