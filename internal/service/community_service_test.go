package service

import (
	"testing"

	"learnify_backend/internal/model"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{}, splitTags(""))
	assert.Equal(t, []string{"go"}, splitTags("go"))
	assert.Equal(t, []string{"go", "web", "eco"}, splitTags("go,web,eco"))
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "", joinTags(nil))
	assert.Equal(t, "go,web", joinTags([]string{"go", "web"}))
	// 空白标签被丢弃，前后空格被裁剪
	assert.Equal(t, "go,eco", joinTags([]string{" go ", "", "  ", "eco"}))
}

func TestTagsRoundTrip(t *testing.T) {
	tags := []string{"career", "sustainability", "question"}
	assert.Equal(t, tags, splitTags(joinTags(tags)))
}

func newCommunityService(db *gorm.DB) *CommunityService {
	return NewCommunityService(repository.NewPostRepository(db), nil)
}

// expectPostLookup 模拟帖子详情查询，作者和回复预加载返回空
func expectPostLookup(mock sqlmock.Sqlmock, postID string, authorID uint, solved bool) {
	mock.ExpectQuery("SELECT (.+) FROM `posts` WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title", "category", "is_solved"}).
			AddRow(postID, authorID, "如何入门 Go", "question", solved))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM `replies`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

// 连续两次点赞应当互相抵消，回到初始状态
func TestCommunityToggleUpvote_Involution(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newCommunityService(db)
	postID := "b2f1c1de-0000-0000-0000-000000000001"

	// 第一次：点上
	mock.ExpectQuery("SELECT count(.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT count(.+) FROM `post_upvotes`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `post_upvotes`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT count(.+) FROM `post_upvotes`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	first, err := svc.ToggleUpvote(7, model.UpvotePost, postID)
	require.NoError(t, err)
	assert.True(t, first.Upvoted)
	assert.EqualValues(t, 1, first.Upvotes)

	// 第二次：取消
	mock.ExpectQuery("SELECT count(.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT count(.+) FROM `post_upvotes`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `post_upvotes`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT count(.+) FROM `post_upvotes`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	second, err := svc.ToggleUpvote(7, model.UpvotePost, postID)
	require.NoError(t, err)
	assert.False(t, second.Upvoted)
	assert.EqualValues(t, 0, second.Upvotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommunityToggleUpvote_UnknownTarget(t *testing.T) {
	db, _ := newMockDB(t)
	svc := newCommunityService(db)

	_, err := svc.ToggleUpvote(7, "comment", "x")
	assert.Error(t, err)
}

func TestCommunityToggleUpvote_TargetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newCommunityService(db)

	mock.ExpectQuery("SELECT count(.+) FROM `replies`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.ToggleUpvote(7, model.UpvoteReply, "missing")
	assert.ErrorIs(t, err, util.ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommunityToggleSolved(t *testing.T) {
	postID := "b2f1c1de-0000-0000-0000-000000000002"

	t.Run("NonAuthorForbidden", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newCommunityService(db)

		// 作者是 9，请求者是 7
		expectPostLookup(mock, postID, 9, false)

		_, err := svc.ToggleSolved(postID, 7)
		assert.ErrorIs(t, err, util.ErrNotAuthorized)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AuthorFlips", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newCommunityService(db)

		expectPostLookup(mock, postID, 7, false)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `posts`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery("SELECT count(.+) FROM `post_upvotes`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("SELECT count(.+) FROM `post_upvotes`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		view, err := svc.ToggleSolved(postID, 7)
		require.NoError(t, err)
		assert.True(t, view.IsSolved)
		assert.EqualValues(t, 2, view.Upvotes)
		assert.False(t, view.HasUpvoted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
