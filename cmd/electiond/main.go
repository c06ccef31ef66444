// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command electiond runs a single in-memory election cycle end to end:
// it drives the phase controller through Signed and Unsigned, mines and
// submits an unsigned solution, and finalizes the round, logging each
// step. It exists to exercise the wiring between packages, not as a
// production node.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/luxfi/election/config"
	"github.com/luxfi/election/currency"
	"github.com/luxfi/election/miner"
	"github.com/luxfi/election/provider"
	"github.com/luxfi/election/provider/testprovider"
	"github.com/luxfi/election/types"

	"github.com/luxfi/log"
)

func main() {
	voterCount := flag.Int("voters", 6, "number of synthetic voters")
	targetCount := flag.Int("targets", 4, "number of synthetic targets")
	desired := flag.Uint("desired", 2, "number of winners to elect")
	flag.Parse()

	logger := log.NewLogger("electiond")

	if err := run(*voterCount, *targetCount, uint32(*desired), logger); err != nil {
		fmt.Fprintf(os.Stderr, "electiond: %v\n", err)
		os.Exit(1)
	}
}

func run(voterCount, targetCount int, desired uint32, logger log.Logger) (err error) {
	// SubmitUnsigned is load-bearing: a feasibility failure there must
	// abort the process rather than be silently absorbed, since it means
	// something upstream let an invalid solution reach block
	// construction. This is the one place in the binary that recovers
	// it, only to turn it into a fatal log line and a nonzero exit code.
	defer func() {
		if r := recover(); r != nil {
			if invalid, ok := r.(*types.InvalidUnsignedSubmissionError); ok {
				logger.Error("fatal: invalid unsigned election solution", "err", invalid)
				err = invalid
				return
			}
			panic(r)
		}
	}()

	fixture := buildFixture(voterCount, targetCount, desired, 30)
	cur := currency.NewMemory(balancesFor(fixture.Voters()))

	cfg, cfgErr := config.NewBuilder().
		WithPhases(10, 5).
		WithMaxSignedSubmissions(4).
		WithImprovementThreshold(1).
		WithMinerLimits(10, ^uint64(0)).
		Build()
	if cfgErr != nil {
		return cfgErr
	}

	p := provider.New(cfg, fixture, cur, currency.DiscardImbalance, currency.DiscardImbalance, nil, logger)

	if err := p.OnInitialize(15); err != nil {
		return err
	}
	if err := p.OnInitialize(25); err != nil {
		return err
	}

	snap, ok := p.Snapshot().Get()
	if !ok {
		return fmt.Errorf("no snapshot available after entering unsigned phase")
	}

	raw, witness, mineErr := miner.Mine(snap, p.Phase().Round(), 2, p.MinerConfig(), nil)
	if mineErr != nil {
		return mineErr
	}

	p.SubmitUnsigned(25, raw, witness)

	result, electErr := p.Elect()
	if electErr != nil {
		return electErr
	}

	logger.Info("election finalized", "winners", len(result.Supports), "score", result.Score, "compute", result.Compute)
	return nil
}

func buildFixture(voterCount, targetCount int, desired uint32, predicted types.BlockNumber) *testprovider.Fixture {
	targets := make([]types.AccountId, targetCount)
	for i := range targets {
		targets[i] = accountID(byte(100 + i))
	}

	voters := make([]types.Voter, voterCount)
	for i := range voters {
		approvals := make([]types.AccountId, 0, 2)
		approvals = append(approvals, targets[i%len(targets)])
		if len(targets) > 1 {
			approvals = append(approvals, targets[(i+1)%len(targets)])
		}
		voters[i] = types.Voter{
			Who:       accountID(byte(i)),
			Stake:     types.VoteWeight(10 * (i + 1)),
			Approvals: approvals,
		}
	}

	return testprovider.New(voters, targets, desired, predicted)
}

func balancesFor(voters []types.Voter) map[types.AccountId]types.Balance {
	balances := make(map[types.AccountId]types.Balance, len(voters))
	for _, v := range voters {
		balances[v.Who] = 10_000
	}
	return balances
}

func accountID(b byte) types.AccountId {
	var raw [20]byte
	raw[0] = b
	return types.AccountId(raw)
}
