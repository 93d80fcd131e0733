package publishers_test

import (
	"time"

	"go.uber.org/mock/gomock"

	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/publishers"
	"github.com/arychagov/w40k/internal/repositories/summaries"
	summariesmock "github.com/arychagov/w40k/internal/repositories/summaries/mock"
)

func (s *PublishersTestSuite) TestNewStoreValidates() {
	_, err := publishers.NewStore(nil, 0)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *PublishersTestSuite) TestStoreSaves() {
	ctrl := gomock.NewController(s.T())
	repo := summariesmock.NewMockRepository(ctrl)

	repo.EXPECT().
		Save(s.ctx, summaries.SaveInput{Summary: s.summary, TTL: 10 * time.Minute}).
		Return(&summaries.SaveOutput{}, nil)

	pub, err := publishers.NewStore(repo, 10*time.Minute)
	s.Require().NoError(err)
	s.Assert().NoError(pub.Publish(s.ctx, s.summary))
}

func (s *PublishersTestSuite) TestStoreKeepsErrorCode() {
	ctrl := gomock.NewController(s.T())
	repo := summariesmock.NewMockRepository(ctrl)

	repo.EXPECT().
		Save(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailablef("redis down"))

	pub, err := publishers.NewStore(repo, 0)
	s.Require().NoError(err)

	err = pub.Publish(s.ctx, s.summary)
	s.Require().Error(err)
	s.Assert().Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *PublishersTestSuite) TestStoreInMemory() {
	repo := summaries.NewInMemory(nil)
	pub, err := publishers.NewStore(repo, 0)
	s.Require().NoError(err)

	s.Require().NoError(pub.Publish(s.ctx, s.summary))

	got, err := repo.Get(s.ctx, summaries.GetInput{BatchID: "batch_1"})
	s.Require().NoError(err)
	s.Assert().Equal(s.summary, got.Summary)
}
