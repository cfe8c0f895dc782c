package usecase_test

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/iho/finlab/internal/usecase/mocks"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type seqIDs struct {
	prefix string
	n      int
}

func (g *seqIDs) Generate() string {
	g.n++
	return g.prefix + strconv.Itoa(g.n)
}

// passthroughRetrier expects Retry calls and runs the operation once.
func passthroughRetrier(ctrl *gomock.Controller) *mocks.MockRetrier {
	r := mocks.NewMockRetrier(ctrl)
	r.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, op func() error) error {
		return op()
	}).AnyTimes()
	return r
}

var nopLogger = zerolog.Nop()
