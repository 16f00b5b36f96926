package domain

import "time"

// EditState is the edit-session state machine position.
type EditState string

const (
	EditIdle      EditState = "idle"
	EditEditing   EditState = "editing"
	EditReviewing EditState = "reviewing"
)

// EditProposal is one pending cell change, shown old-vs-new in review.
type EditProposal struct {
	Seq        int    `json:"seq"`
	CompareKey string `json:"compare_key"`
	Column     string `json:"column"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
}

// EditCommit records one accepted review batch.
type EditCommit struct {
	ID          string    `json:"id"`
	ChangeCount int       `json:"change_count"`
	CommittedAt time.Time `json:"committed_at"`
}

// EditChange is one persisted cell change belonging to a commit.
type EditChange struct {
	CommitID   string `json:"commit_id"`
	CompareKey string `json:"compare_key"`
	Column     string `json:"column"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
}

// UploadRecord describes one stored "latest" input file.
type UploadRecord struct {
	ID         int64     `json:"id"`
	Alias      string    `json:"alias"`
	Filename   string    `json:"filename"`
	Ext        string    `json:"ext"`
	Hash       string    `json:"hash"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}
