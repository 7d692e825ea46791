package engine

import (
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
	"github.com/rs/zerolog/log"
)

// TxState is a transaction's position in the state machine from
// spec §4.7.
type TxState string

const (
	TxActive     TxState = "active"
	TxCommitted  TxState = "committed"
	TxRolledBack TxState = "rolled_back"
	TxTimedOut   TxState = "timed_out"
)

// LoggedOp records one executed command for the transaction's
// operation log.
type LoggedOp struct {
	Index       int
	Description string
	Result      *Result
	At          time.Time
}

type savepoint struct {
	opIndex int
	state   *ucm.Document
}

// Transaction sequences commands against a single Document, per
// spec §4.7. It operates copy-on-commit: a working copy absorbs every
// mutation, and only commit() writes it back into the caller's
// reference.
type Transaction struct {
	ID        types.Id
	Name      string
	State     TxState
	StartedAt time.Time
	Timeout   time.Duration

	original   *ucm.Document // the document reference the caller gave us
	working    *ucm.Document // the copy every command mutates
	allocator  interface{ NextBlockID() types.Id }
	log        []LoggedOp
	savepoints map[string]savepoint
}

// Begin starts a new transaction against doc. doc is not mutated
// until Commit.
func Begin(id types.Id, doc *ucm.Document, allocator interface{ NextBlockID() types.Id }, timeout time.Duration) *Transaction {
	return &Transaction{
		ID:         id,
		State:      TxActive,
		StartedAt:  time.Now(),
		Timeout:    timeout,
		original:   doc,
		working:    doc.Clone(),
		allocator:  allocator,
		savepoints: make(map[string]savepoint),
	}
}

func (tx *Transaction) checkActive() error {
	if tx.State != TxActive {
		return types.NewError(types.ErrNotActive, "transaction %s is %s, not active", tx.ID, tx.State)
	}
	if tx.Timeout > 0 && time.Since(tx.StartedAt) > tx.Timeout {
		tx.State = TxTimedOut
		return types.NewError(types.ErrTimedOut, "transaction %s timed out after %s", tx.ID, tx.Timeout)
	}
	return nil
}

// Apply executes cmd against the transaction's working copy and
// appends it to the operation log, regardless of success; callers
// inspect the returned Result to decide whether to continue.
func (tx *Transaction) Apply(cmd Command) (*Result, error) {
	if err := tx.checkActive(); err != nil {
		return nil, err
	}
	ctx := &OpContext{Doc: tx.working, Allocator: tx.allocator}
	result := cmd.Execute(ctx)
	tx.log = append(tx.log, LoggedOp{Index: len(tx.log), Description: cmd.Description(), Result: result, At: time.Now()})
	log.Debug().Str("tx", string(tx.ID)).Str("op", cmd.Description()).Bool("success", result.Success).Msg("applied operation")
	return result, nil
}

// Savepoint serializes the current working state under name. Fails if
// name is already in use.
func (tx *Transaction) Savepoint(name string) error {
	if err := tx.checkActive(); err != nil {
		return err
	}
	if _, exists := tx.savepoints[name]; exists {
		return types.NewError(types.ErrSavepointExists, "savepoint %q already exists", name)
	}
	tx.savepoints[name] = savepoint{opIndex: len(tx.log), state: tx.working.Clone()}
	return nil
}

// RollbackToSavepoint restores the working state captured at name and
// discards every logged op after that point, along with any
// savepoints created after it.
func (tx *Transaction) RollbackToSavepoint(name string) error {
	if err := tx.checkActive(); err != nil {
		return err
	}
	sp, ok := tx.savepoints[name]
	if !ok {
		return types.NewError(types.ErrSavepointNotFound, "savepoint %q does not exist", name)
	}
	tx.working = sp.state.Clone()
	tx.log = tx.log[:sp.opIndex]
	for n, other := range tx.savepoints {
		if other.opIndex > sp.opIndex {
			delete(tx.savepoints, n)
		}
	}
	return nil
}

// Commit writes the working copy back into the document the caller
// originally handed to Begin, bumping its version.
func (tx *Transaction) Commit() error {
	if err := tx.checkActive(); err != nil {
		return err
	}
	tx.working.Version = tx.original.Version + 1
	*tx.original = *tx.working
	tx.State = TxCommitted
	log.Info().Str("tx", string(tx.ID)).Int("ops", len(tx.log)).Msg("transaction committed")
	return nil
}

// Rollback discards the working copy; the original document is
// untouched.
func (tx *Transaction) Rollback() error {
	if tx.State != TxActive && tx.State != TxTimedOut {
		return types.NewError(types.ErrAlreadyTerminated, "transaction %s already %s", tx.ID, tx.State)
	}
	tx.State = TxRolledBack
	log.Info().Str("tx", string(tx.ID)).Int("ops", len(tx.log)).Msg("transaction rolled back")
	return nil
}

// Log returns the operation log recorded so far.
func (tx *Transaction) Log() []LoggedOp { return append([]LoggedOp(nil), tx.log...) }

// Document returns the transaction's working copy, for read access
// mid-transaction (e.g. by the UCL executor resolving labels created
// earlier in the same transaction).
func (tx *Transaction) Document() *ucm.Document { return tx.working }
