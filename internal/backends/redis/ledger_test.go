package redis

import (
	"context"
	"os"
	"testing"

	"bumpdeps/internal/types"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

// LedgerTestSuite needs a running Redis; set TEST_REDIS_ADDR (e.g. localhost:6379) to enable it.
type LedgerTestSuite struct {
	suite.Suite

	cli    *redis.Client
	ledger *Ledger
}

func TestLedgerTestSuite(t *testing.T) {
	if os.Getenv("TEST_REDIS_ADDR") == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupSuite() {
	s.cli = redis.NewClient(&redis.Options{Addr: os.Getenv("TEST_REDIS_ADDR")})
	s.Require().NoError(s.cli.Ping(context.Background()).Err())
	s.ledger = NewLedger(s.cli)
}

func (s *LedgerTestSuite) SetupTest() {
	s.Require().NoError(s.cli.Del(context.Background(), getLedgerKey("korkVersion", "7.0.0")).Err())
}

func (s *LedgerTestSuite) TearDownSuite() {
	_ = s.cli.Close()
}

func (s *LedgerTestSuite) TestRecordAndOverwrite() {
	ctx := context.Background()
	for i, status := range []types.RepoStatus{types.StatusFailed, types.StatusCreated} {
		err := s.ledger.Record(ctx, "korkVersion", "7.0.0", types.RepoResult{
			Repo:       "clouddriver",
			Status:     status,
			FinishedAt: int64(i),
		})
		s.Require().NoError(err)
	}
	s.Require().NoError(s.ledger.Record(ctx, "korkVersion", "7.0.0", types.RepoResult{
		Repo:   "orca",
		Status: types.StatusReused,
	}))

	results, err := s.ledger.Results(ctx, "korkVersion", "7.0.0")
	s.Require().NoError(err)
	s.Len(results, 2)
	byRepo := map[string]types.RepoResult{}
	for _, r := range results {
		byRepo[r.Repo] = r
	}
	s.Equal(types.StatusCreated, byRepo["clouddriver"].Status)
	s.EqualValues(1, byRepo["clouddriver"].FinishedAt)
	s.Equal(types.StatusReused, byRepo["orca"].Status)
}

func (s *LedgerTestSuite) TestResultsEmpty() {
	results, err := s.ledger.Results(context.Background(), "korkVersion", "7.0.0")
	s.Require().NoError(err)
	s.Empty(results)
}

func TestLedgerKey(t *testing.T) {
	if got := getLedgerKey("k", "1.0"); got != "_bumpdeps_ledger_k_1.0" {
		t.Fatalf("unexpected key %s", got)
	}
}
