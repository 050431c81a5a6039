package service

import "errors"

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// DeleteConfirmationPhrase is the exact word the operator must type to
// confirm a submission delete.
const DeleteConfirmationPhrase = "削除"

var (
	// ErrAdminRequired is returned when a non-admin session reaches an
	// approval-workflow operation.
	ErrAdminRequired = errors.New("管理者権限が必要です。")

	// ErrSubmissionNotFound is returned for operations on unknown ids.
	ErrSubmissionNotFound = errors.New("申請が見つかりません。")

	// ErrInvalidStatus is returned for an unknown target status.
	ErrInvalidStatus = errors.New("不正なステータスです。")

	// ErrDeleteNotConfirmed aborts a delete whose two-step confirmation
	// did not complete. Nothing has been mutated.
	ErrDeleteNotConfirmed = errors.New("削除がキャンセルされました。")

	// ErrInvalidDateRange is returned when an export date bound is not a
	// YYYY-MM-DD value.
	ErrInvalidDateRange = errors.New("日付の形式が正しくありません。")

	// ErrNothingToExport is returned when the export query matches no
	// approved submissions.
	ErrNothingToExport = errors.New("承認済みの交通費がありません。")

	// ErrInvalidCredentials is returned on sign-in failure. It does not
	// distinguish unknown accounts from wrong passwords.
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません。")

	// ErrEmailTaken is returned when signing up an existing address.
	ErrEmailTaken = errors.New("このメールアドレスは既に登録されています。")
)
