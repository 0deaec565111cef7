package submission

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = originalDB
		mockDB.Close()
	})

	return mock
}

func pendingSubmissionRows(id, title string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "post_type", "title", "content", "status", "author_id", "approval_token"}).
		AddRow(id, TypePods, title, "Some content.", StatusPending, "author-1", "token-1")
}

func TestApproveNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := Approve("missing-id", "mod-1")

	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestApproveAlreadyApproved(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "status", "author_id", "title"}).
		AddRow("sub-1", StatusApproved, "author-1", "Robot Arm")
	mock.ExpectQuery(`SELECT \* FROM "submissions"`).WillReturnRows(rows)

	_, _, err := Approve("sub-1", "mod-1")

	var ise *InvalidStateError
	assert.ErrorAs(t, err, &ise)
	assert.Equal(t, StatusApproved, ise.Current)
}

func TestApproveSuccess(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WillReturnRows(pendingSubmissionRows("sub-1", "Robot Arm"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "posts"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sub, created, err := Approve("sub-1", "mod-1")

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, sub.Status)
	assert.Equal(t, "mod-1", sub.ReviewedBy)
	assert.NotNil(t, sub.PublishedAt)
	assert.Equal(t, "robot-arm", created.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveSlugCollisionRetriesWithSuffix(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WillReturnRows(pendingSubmissionRows("sub-2", "Robot Arm"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions"`).WillReturnResult(sqlmock.NewResult(0, 1))

	// Première insertion : collision sur le slug "robot-arm"
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "posts"`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_posts_slug\""})
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))

	// Deuxième tentative avec le suffixe -2
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "posts"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, created, err := Approve("sub-2", "mod-1")

	assert.NoError(t, err)
	assert.Equal(t, "robot-arm-2", created.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveLosesRaceToConcurrentModerator(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WillReturnRows(pendingSubmissionRows("sub-3", "Robot Arm"))

	mock.ExpectBegin()
	// Un autre modérateur a déjà tranché : la mise à jour gardée ne
	// touche aucune ligne
	mock.ExpectExec(`UPDATE "submissions"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(StatusRejected))
	mock.ExpectRollback()

	_, _, err := Approve("sub-3", "mod-1")

	var ise *InvalidStateError
	assert.ErrorAs(t, err, &ise)
	assert.Equal(t, StatusRejected, ise.Current)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectSuccess(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WillReturnRows(pendingSubmissionRows("sub-4", "Robot Arm"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sub, err := Reject("sub-4", "mod-1", "Please fix the sources.", true)

	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, sub.Status)
	assert.Equal(t, "Please fix the sources.", sub.RejectionReason)
	assert.True(t, sub.CanMoveToDraft)
	assert.Equal(t, "mod-1", sub.ReviewedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectNonPending(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "status", "author_id"}).
		AddRow("sub-5", StatusRejected, "author-1")
	mock.ExpectQuery(`SELECT \* FROM "submissions"`).WillReturnRows(rows)

	_, err := Reject("sub-5", "mod-1", "reason", false)

	var ise *InvalidStateError
	assert.ErrorAs(t, err, &ise)
}

func TestMoveToDraftFromRejected(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "post_type", "title", "content", "status", "author_id", "can_move_to_draft"}).
		AddRow("sub-6", TypePods, "Episode Nine", "Show notes.", StatusRejected, "author-1", true)
	mock.ExpectQuery(`SELECT \* FROM "submissions"`).WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "submissions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	// Commentaires de revue : enfants puis parents
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "drafts"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	draft, err := MoveToDraft("sub-6")

	assert.NoError(t, err)
	assert.Equal(t, "Episode Nine", draft.Title)
	assert.Equal(t, "Show notes.", draft.Content)
	assert.Equal(t, "author-1", draft.AuthorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveToDraftRequiresRejectedStatus(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "status", "author_id"}).
		AddRow("sub-7", StatusPending, "author-1")
	mock.ExpectQuery(`SELECT \* FROM "submissions"`).WillReturnRows(rows)

	_, err := MoveToDraft("sub-7")

	var ise *InvalidStateError
	assert.ErrorAs(t, err, &ise)
}

func TestMoveToDraftBlockedWhenNotGranted(t *testing.T) {
	mock := setupMockDB(t)

	// Rejetée sans l'option brouillon : conflit d'état, pas d'autorisation
	rows := sqlmock.NewRows([]string{"id", "status", "author_id", "can_move_to_draft"}).
		AddRow("sub-12", StatusRejected, "author-1", false)
	mock.ExpectQuery(`SELECT \* FROM "submissions"`).WillReturnRows(rows)

	_, err := MoveToDraft("sub-12")

	var ise *InvalidStateError
	assert.ErrorAs(t, err, &ise)
	assert.Equal(t, StatusRejected, ise.Current)
}

func TestPromoteDraftAssignsTokenAndRemovesDraft(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "author_id", "draft_name", "post_type", "title", "content"}).
		AddRow("draft-1", "author-1", "Episode Ten", TypePods, "Episode Ten", "Show notes.")
	mock.ExpectQuery(`SELECT \* FROM "drafts"`).WillReturnRows(rows)

	// Insertion de la soumission et disparition du brouillon dans la même
	// transaction
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "submissions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "drafts"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sub, err := PromoteDraft("draft-1", "author-1")

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, sub.Status)
	assert.NotEmpty(t, sub.ApprovalToken)
	assert.Equal(t, "Episode Ten", sub.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteDraftForeignDraftForbidden(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "author_id", "post_type", "title", "content"}).
		AddRow("draft-2", "someone-else", TypePods, "Episode Ten", "Show notes.")
	mock.ExpectQuery(`SELECT \* FROM "drafts"`).WillReturnRows(rows)

	_, err := PromoteDraft("draft-2", "author-1")

	var ae *AuthorizationError
	assert.ErrorAs(t, err, &ae)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveToReviewDeletesSpawnedPost(t *testing.T) {
	mock := setupMockDB(t)

	publishedAt := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "post_type", "title", "content", "status", "author_id", "published_at"}).
		AddRow("sub-10", TypePods, "Robot Arm", "Content.", StatusApproved, "author-1", publishedAt)
	mock.ExpectQuery(`SELECT \* FROM "submissions"`).WillReturnRows(rows)

	mock.ExpectBegin()
	// Retour en PENDING gardé par le statut courant
	mock.ExpectExec(`UPDATE "submissions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	// Le post créé à l'approbation est retrouvé puis supprimé, commentaires
	// d'abord, dans la même transaction
	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "author_id"}).
			AddRow("post-10", "robot-arm", "Robot Arm", "author-1"))
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "posts"`).WillReturnResult(sqlmock.NewResult(0, 1))
	// post_ids perd le post, puis pending_post_ids retrouve la soumission
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sub, err := MoveToReview("sub-10")

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, sub.Status)
	assert.Empty(t, sub.ReviewedBy)
	assert.Nil(t, sub.PublishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveToReviewRequiresApprovedStatus(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WillReturnRows(pendingSubmissionRows("sub-11", "Robot Arm"))

	_, err := MoveToReview("sub-11")

	var ise *InvalidStateError
	assert.ErrorAs(t, err, &ise)
	assert.Equal(t, StatusPending, ise.Current)
}

func TestDeleteApprovedSubmissionCascades(t *testing.T) {
	mock := setupMockDB(t)

	publishedAt := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "post_type", "title", "content", "status", "author_id", "published_at"}).
		AddRow("sub-8", TypePods, "Robot Arm", "Content.", StatusApproved, "author-1", publishedAt)
	mock.ExpectQuery(`SELECT \* FROM "submissions"`).WillReturnRows(rows)

	mock.ExpectBegin()
	// Localisation du post par auteur + titre + date de publication
	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "author_id"}).
			AddRow("post-8", "robot-arm", "Robot Arm", "author-1"))
	// Commentaires du post : enfants puis parents
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "posts"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	// Commentaires de revue de la soumission
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "submissions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := Delete("sub-8")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppendsToPendingInSameTransaction(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "submissions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sub, err := Create("author-1", &CreateSubmissionInput{
		PostType: TypePods,
		Title:    "Episode One",
		Content:  "Show notes.",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, sub.Status)
	assert.NotEmpty(t, sub.ApprovalToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateValidationFailsBeforeAnyWrite(t *testing.T) {
	mock := setupMockDB(t)

	_, err := Create("author-1", &CreateSubmissionInput{
		PostType: TypeExpo,
		Title:    "Two Images One Credit",
		Content:  "Gallery.",
		Images:   []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		ImageAttributions: AttributionList{
			{Kind: AttributionOriginal},
		},
	})

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "Each SM Expo image requires a credit selection.", ve.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
