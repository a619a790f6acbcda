package application

import "time"

// ProvisionedRoom is the proxy's view of a freshly created provider room.
type ProvisionedRoom struct {
	URL   string
	Name  string
	Title string
}

// CreateRoomParams carries the create-room request fields.
type CreateRoomParams struct {
	RoomName string
	Title    string
}

// MintTokenParams carries the token-minting request fields.
type MintTokenParams struct {
	RoomName string
	UserName string
	IsOwner  bool
}

// TranscribeParams identifies an uploaded audio file to transcribe. RoomName
// is optional and only used to attach the transcript to an archived meeting.
type TranscribeParams struct {
	FilePath string
	RoomName string
}

// SummaryInput carries the transcript and meeting metadata the report is
// generated from.
type SummaryInput struct {
	Transcript   string
	Title        string
	Participants []string
	Duration     string
	RoomName     string
}

// ArchivedMeeting is one row of the optional server-side meeting archive.
type ArchivedMeeting struct {
	ID         string
	RoomName   string
	Title      string
	URL        string
	Transcript string
	Summary    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
