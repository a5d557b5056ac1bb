package memory

import "errors"

var errInjectedFailure = errors.New("memory store: injected posting failure")

// unitOfWork stages writes and applies them only on commit, so a failed
// posting leaves no partial state behind.
type unitOfWork struct {
	s      *Store
	writes []func()
}

func (s *Store) begin() *unitOfWork {
	return &unitOfWork{s: s}
}

func (u *unitOfWork) stage(apply func()) error {
	if u.s.failAfterWrites > 0 && len(u.writes) >= u.s.failAfterWrites {
		return errInjectedFailure
	}
	u.writes = append(u.writes, apply)
	return nil
}

func (u *unitOfWork) commit() {
	for _, apply := range u.writes {
		apply()
	}
}
