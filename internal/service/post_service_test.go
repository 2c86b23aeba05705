package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/neighborly/forum/internal/apperr"
	"github.com/neighborly/forum/internal/guard"
	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/moderation"
	"github.com/neighborly/forum/internal/notifier"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/internal/service"
	"github.com/neighborly/forum/internal/testutil"
	"github.com/neighborly/forum/pkg/logger"
)

type PostServiceTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	testRedis   *testutil.TestRedis
	broker      *notifier.RedisBroker
	postService *service.PostService
}

func (s *PostServiceTestSuite) SetupSuite() {
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())
	s.testRedis = testutil.SetupTestRedis(s.T())

	broker, err := notifier.NewRedisBroker(s.testRedis.URL)
	s.Require().NoError(err)
	s.broker = broker

	userRepo := repository.NewUserRepository(s.testDB.DB)
	postRepo := repository.NewPostRepository(s.testDB.DB)
	s.postService = service.NewPostService(postRepo, guard.New(userRepo), broker)
}

func (s *PostServiceTestSuite) TearDownSuite() {
	s.broker.Close()
	s.testDB.Teardown(s.T())
	s.testRedis.Teardown(s.T())
}

func (s *PostServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *PostServiceTestSuite) TestCreate() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")

	post, err := s.postService.Create(alice.ID, "hello neighbors")

	s.Require().NoError(err)
	assert.Equal(s.T(), "hello neighbors", post.Content)
	assert.False(s.T(), post.IsDeleted)
	s.Require().NotNil(post.Author.ID)
	assert.Equal(s.T(), alice.ID, *post.Author.ID)
	assert.Equal(s.T(), "alice", post.Author.Username)
}

func (s *PostServiceTestSuite) TestCreateBlankContent() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")

	post, err := s.postService.Create(alice.ID, "   ")

	assert.Nil(s.T(), post)
	assert.True(s.T(), apperr.IsKind(err, apperr.KindInvalid))
}

func (s *PostServiceTestSuite) TestCreateGatedOnLiveState() {
	pending := testutil.CreatePendingUser(s.T(), s.testDB.DB, "pat")
	banned := testutil.CreateBannedUser(s.T(), s.testDB.DB, "bert")

	_, err := s.postService.Create(pending.ID, "hi")
	s.Require().Error(err)
	assert.Equal(s.T(), "your account is pending approval by an admin", err.Error())

	_, err = s.postService.Create(banned.ID, "hi")
	s.Require().Error(err)
	assert.Equal(s.T(), "you are banned and cannot perform this action", err.Error())

	// Approval granted after token issuance takes effect immediately:
	// the gate reads the store, not the token
	pending.IsApproved = true
	s.Require().NoError(s.testDB.DB.Save(pending).Error)
	_, err = s.postService.Create(pending.ID, "hi")
	assert.NoError(s.T(), err)
}

func (s *PostServiceTestSuite) TestListRequiresApproval() {
	pending := testutil.CreatePendingUser(s.T(), s.testDB.DB, "pat")

	posts, err := s.postService.List(pending.ID)

	assert.Nil(s.T(), posts)
	s.Require().Error(err)
	assert.True(s.T(), apperr.IsKind(err, apperr.KindForbidden))
}

func (s *PostServiceTestSuite) TestListNewestFirst() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")
	first := testutil.CreateTestPost(s.T(), s.testDB.DB, alice.ID, "first")
	second := testutil.CreateTestPost(s.T(), s.testDB.DB, alice.ID, "second")

	posts, err := s.postService.List(alice.ID)

	s.Require().NoError(err)
	s.Require().Len(posts, 2)
	assert.Equal(s.T(), second.ID, posts[0].ID)
	assert.Equal(s.T(), first.ID, posts[1].ID)
}

func (s *PostServiceTestSuite) TestListAnonymizesBannedAuthor() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")
	banned := testutil.CreateBannedUser(s.T(), s.testDB.DB, "bert")
	testutil.CreateTestPost(s.T(), s.testDB.DB, banned.ID, "still visible")

	posts, err := s.postService.List(alice.ID)

	s.Require().NoError(err)
	s.Require().Len(posts, 1)
	assert.Equal(s.T(), "still visible", posts[0].Content, "Banning hides identity, not content")
	assert.Nil(s.T(), posts[0].Author.ID)
	assert.Equal(s.T(), "Deleted User", posts[0].Author.Username)
}

func (s *PostServiceTestSuite) TestDeleteByOwner() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")
	post := testutil.CreateTestPost(s.T(), s.testDB.DB, alice.ID, "oops")

	projection, err := s.postService.Delete(post.ID, alice.ID, false)

	s.Require().NoError(err)
	assert.True(s.T(), projection.IsDeleted)
	s.Require().NotNil(projection.DeletionType)
	assert.Equal(s.T(), "user", *projection.DeletionType)
	assert.Equal(s.T(), moderation.PlaceholderUser, projection.Content)

	// Stored content survives, only the projection masks it
	var stored models.Post
	s.Require().NoError(s.testDB.DB.First(&stored, post.ID).Error)
	assert.Equal(s.T(), "oops", stored.Content)
	assert.True(s.T(), stored.IsDeleted)
}

func (s *PostServiceTestSuite) TestDeleteByAdmin() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")
	admin := testutil.CreateAdminUser(s.T(), s.testDB.DB, "admin")
	post := testutil.CreateTestPost(s.T(), s.testDB.DB, alice.ID, "removed by mods")

	projection, err := s.postService.Delete(post.ID, admin.ID, true)

	s.Require().NoError(err)
	s.Require().NotNil(projection.DeletionType)
	assert.Equal(s.T(), "admin", *projection.DeletionType)
	assert.Equal(s.T(), moderation.PlaceholderAdmin, projection.Content)
}

func (s *PostServiceTestSuite) TestDeleteByStranger() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")
	bob := testutil.CreateTestUser(s.T(), s.testDB.DB, "bob")
	post := testutil.CreateTestPost(s.T(), s.testDB.DB, alice.ID, "mine")

	_, err := s.postService.Delete(post.ID, bob.ID, false)

	s.Require().Error(err)
	assert.True(s.T(), apperr.IsKind(err, apperr.KindForbidden))

	var stored models.Post
	s.Require().NoError(s.testDB.DB.First(&stored, post.ID).Error)
	assert.False(s.T(), stored.IsDeleted, "Rejected delete must not change state")
}

func (s *PostServiceTestSuite) TestDeleteTwiceConflicts() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")
	admin := testutil.CreateAdminUser(s.T(), s.testDB.DB, "admin")
	post := testutil.CreateTestPost(s.T(), s.testDB.DB, alice.ID, "once")

	_, err := s.postService.Delete(post.ID, alice.ID, false)
	s.Require().NoError(err)

	events, err := s.broker.Subscribe()
	s.Require().NoError(err)

	// No restore and no overwrite, even by an admin
	_, err = s.postService.Delete(post.ID, admin.ID, true)
	s.Require().Error(err)
	assert.True(s.T(), apperr.IsKind(err, apperr.KindConflict))

	// The conflict short-circuits before anything is published
	select {
	case payload := <-events:
		s.Failf("unexpected event", "rejected delete must stay silent, got %s", payload)
	case <-time.After(200 * time.Millisecond):
	}

	var stored models.Post
	s.Require().NoError(s.testDB.DB.First(&stored, post.ID).Error)
	assert.Equal(s.T(), "user", stored.DeletionType, "Provenance must not be overwritten")
}

func (s *PostServiceTestSuite) TestDeleteMissingPost() {
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "alice")

	_, err := s.postService.Delete(12345, alice.ID, false)

	assert.True(s.T(), apperr.IsKind(err, apperr.KindNotFound))
}

func TestPostServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostServiceTestSuite))
}
