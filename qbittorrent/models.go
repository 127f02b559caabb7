package qbittorrent

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// TorrentInfo mirrors a single entry of the torrents/info response.
type TorrentInfo struct {
	// AddedOn is the time (Unix Epoch) when the torrent was added to the client.
	AddedOn int64 `json:"added_on"`

	// AmountLeft is the amount of data left to download (bytes).
	AmountLeft int64 `json:"amount_left"`

	// AutoTMM reports whether this torrent is managed by Automatic Torrent Management.
	AutoTMM bool `json:"auto_tmm"`

	// Availability is the percentage of file pieces currently available.
	Availability float64 `json:"availability"`

	// Category of the torrent, empty if uncategorized.
	Category string `json:"category"`

	// Completed is the amount of transfer data completed (bytes).
	Completed int64 `json:"completed"`

	// CompletionOn is the time (Unix Epoch) when the torrent completed.
	CompletionOn int64 `json:"completion_on"`

	// ContentPath is the absolute path of torrent content (root path for
	// multi-file torrents, absolute file path for single-file torrents).
	ContentPath string `json:"content_path"`

	// DownloadLimit is the torrent download speed limit (bytes/s), -1 if unlimited.
	DownloadLimit int64 `json:"dl_limit"`

	// DownloadSpeed is the torrent download speed (bytes/s).
	DownloadSpeed int64 `json:"dlspeed"`

	// Downloaded is the amount of data downloaded.
	Downloaded int64 `json:"downloaded"`

	// DownloadedSession is the amount of data downloaded this session.
	DownloadedSession int64 `json:"downloaded_session"`

	// ETA in seconds.
	ETA int64 `json:"eta"`

	// FirstLastPiecePrio is true if first/last piece are prioritized.
	FirstLastPiecePrio bool `json:"f_l_piece_prio"`

	// ForceStart is true if force start is enabled for this torrent.
	ForceStart bool `json:"force_start"`

	// Hash of the torrent.
	Hash string `json:"hash"`

	// LastActivity is the last time (Unix Epoch) a chunk was downloaded/uploaded.
	LastActivity int64 `json:"last_activity"`

	// MagnetURI corresponding to this torrent.
	MagnetURI string `json:"magnet_uri"`

	// MaxRatio is the maximum share ratio until the torrent stops seeding.
	MaxRatio float64 `json:"max_ratio"`

	// MaxSeedingTime is the maximum seeding time (seconds) until the torrent stops seeding.
	MaxSeedingTime int64 `json:"max_seeding_time"`

	// Name of the torrent.
	Name string `json:"name"`

	// NumComplete is the number of seeds in the swarm.
	NumComplete int `json:"num_complete"`

	// NumIncomplete is the number of leechers in the swarm.
	NumIncomplete int `json:"num_incomplete"`

	// NumLeechs is the number of leechers connected to.
	NumLeechs int `json:"num_leechs"`

	// NumSeeds is the number of seeds connected to.
	NumSeeds int `json:"num_seeds"`

	// Priority of the torrent, -1 if queuing is disabled or the torrent is in seed mode.
	Priority int `json:"priority"`

	// Progress as a fraction between 0 and 1.
	Progress float64 `json:"progress"`

	// Ratio is the torrent share ratio, capped upstream at 9999.
	Ratio float64 `json:"ratio"`

	RatioLimit float64 `json:"ratio_limit"`

	// SavePath is the path where this torrent's data is stored.
	SavePath string `json:"save_path"`

	// SeedingTime is the elapsed time while complete (seconds).
	SeedingTime int64 `json:"seeding_time"`

	// SeedingTimeLimit is the per-torrent seeding time limit, -2 when
	// Automatic Torrent Management is enabled and -1 when unset.
	SeedingTimeLimit int64 `json:"seeding_time_limit"`

	// SeenComplete is the time (Unix Epoch) the torrent was last seen complete.
	SeenComplete int64 `json:"seen_complete"`

	// SequentialDownload is true if sequential download is enabled.
	SequentialDownload bool `json:"seq_dl"`

	// Size is the total size (bytes) of files selected for download.
	Size int64 `json:"size"`

	// State of the torrent.
	State TorrentState `json:"state"`

	// SuperSeeding is true if super seeding is enabled.
	SuperSeeding bool `json:"super_seeding"`

	// Tags of the torrent. Comma-joined on the wire.
	Tags TagList `json:"tags"`

	// TimeActive is the total active time (seconds).
	TimeActive int64 `json:"time_active"`

	// TotalSize is the total size (bytes) of all files, including unselected ones.
	TotalSize int64 `json:"total_size"`

	// Tracker is the first tracker with working status, empty if none work.
	Tracker string `json:"tracker"`

	// UploadLimit is the torrent upload speed limit (bytes/s), -1 if unlimited.
	UploadLimit int64 `json:"up_limit"`

	// Uploaded is the amount of data uploaded.
	Uploaded int64 `json:"uploaded"`

	// UploadedSession is the amount of data uploaded this session.
	UploadedSession int64 `json:"uploaded_session"`

	// UploadSpeed is the torrent upload speed (bytes/s).
	UploadSpeed int64 `json:"upspeed"`
}

// GetFullPath returns the full path to the torrent content.
func (t *TorrentInfo) GetFullPath() string {
	if t.ContentPath != "" {
		return t.ContentPath
	}
	return t.SavePath + "/" + t.Name
}

// TagList is a list of tags serialized as a single comma-joined string, the
// format the WebUI uses in torrents/info responses.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	if strings.TrimSpace(joined) == "" {
		*t = nil
		return nil
	}
	parts := strings.Split(joined, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	*t = parts
	return nil
}

func (t TagList) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.Join(t, ", "))
}

// TorrentState is the state field of a torrent as reported by the WebUI.
type TorrentState string

const (
	// StateError means some error occurred, applies to paused torrents.
	StateError TorrentState = "error"

	// StateMissingFiles means the torrent data files are missing.
	StateMissingFiles TorrentState = "missingFiles"

	// StateUploading means the torrent is being seeded and data is being transferred.
	StateUploading TorrentState = "uploading"

	// StatePausedUP means the torrent is paused and has finished downloading.
	StatePausedUP TorrentState = "pausedUP"

	// StateQueuedUP means queuing is enabled and the torrent is queued for upload.
	StateQueuedUP TorrentState = "queuedUP"

	// StateStalledUP means the torrent is being seeded, but no connections were made.
	StateStalledUP TorrentState = "stalledUP"

	// StateCheckingUP means the torrent has finished downloading and is being checked.
	StateCheckingUP TorrentState = "checkingUP"

	// StateForcedUP means the torrent is forced to upload, ignoring the queue limit.
	StateForcedUP TorrentState = "forcedUP"

	// StateAllocating means the torrent is allocating disk space for download.
	StateAllocating TorrentState = "allocating"

	// StateDownloading means the torrent is being downloaded and data is being transferred.
	StateDownloading TorrentState = "downloading"

	// StateMetaDL means the torrent has just started downloading and is fetching metadata.
	StateMetaDL TorrentState = "metaDL"

	// StatePausedDL means the torrent is paused and has not finished downloading.
	StatePausedDL TorrentState = "pausedDL"

	// StateQueuedDL means queuing is enabled and the torrent is queued for download.
	StateQueuedDL TorrentState = "queuedDL"

	// StateStalledDL means the torrent is being downloaded, but no connections were made.
	StateStalledDL TorrentState = "stalledDL"

	// StateCheckingDL is the same as checkingUP, but the torrent has not finished downloading.
	StateCheckingDL TorrentState = "checkingDL"

	// StateForcedDL means the torrent is forced to download, ignoring the queue limit.
	StateForcedDL TorrentState = "forcedDL"

	// StateCheckingResumeData means resume data is being checked on client startup.
	StateCheckingResumeData TorrentState = "checkingResumeData"

	// StateMoving means the torrent is moving to another location.
	StateMoving TorrentState = "moving"

	// StateUnknown is an unrecognized state.
	StateUnknown TorrentState = "unknown"
)

// IsSeeding reports whether the torrent is in a seeding state.
func (s TorrentState) IsSeeding() bool {
	switch s {
	case StateUploading, StateStalledUP, StateQueuedUP, StateForcedUP, StateCheckingUP:
		return true
	}
	return false
}

// IsDownloading reports whether the torrent is in a downloading state.
func (s TorrentState) IsDownloading() bool {
	switch s {
	case StateDownloading, StateStalledDL, StateQueuedDL, StateForcedDL, StateMetaDL, StateCheckingDL, StateAllocating:
		return true
	}
	return false
}

// IsPaused reports whether the torrent is paused.
func (s TorrentState) IsPaused() bool {
	return s == StatePausedUP || s == StatePausedDL
}

// IsErrored reports whether the torrent is in an error state.
func (s TorrentState) IsErrored() bool {
	return s == StateError || s == StateMissingFiles
}

// TorrentTracker mirrors a single entry of the torrents/trackers response.
type TorrentTracker struct {
	// URL of the tracker.
	URL string `json:"url"`

	// Status of the tracker.
	Status TrackerStatus `json:"status"`

	// Tier of the tracker. Lower tiers are tried first; negative values are
	// placeholders for special entries such as DHT.
	Tier int `json:"tier"`

	// NumPeers for the current torrent, as reported by the tracker.
	NumPeers int `json:"num_peers"`

	// NumSeeds for the current torrent, as reported by the tracker.
	NumSeeds int `json:"num_seeds"`

	// NumLeeches for the current torrent, as reported by the tracker.
	NumLeeches int `json:"num_leeches"`

	// NumDownloaded for the current torrent, as reported by the tracker.
	NumDownloaded int `json:"num_downloaded"`

	// Message from the tracker, free-form.
	Message string `json:"msg"`
}

// TrackerStatus is the numeric status of a tracker entry.
type TrackerStatus int

const (
	// TrackerDisabled is used for DHT, PeX and LSD pseudo-trackers.
	TrackerDisabled TrackerStatus = iota

	// TrackerNotContacted means the tracker has not been contacted yet.
	TrackerNotContacted

	// TrackerWorking means the tracker has been contacted and is working.
	TrackerWorking

	// TrackerUpdating means the tracker is updating.
	TrackerUpdating

	// TrackerNotWorking means the tracker has been contacted but is not working.
	TrackerNotWorking
)

func (s TrackerStatus) String() string {
	switch s {
	case TrackerDisabled:
		return "disabled"
	case TrackerNotContacted:
		return "not contacted"
	case TrackerWorking:
		return "working"
	case TrackerUpdating:
		return "updating"
	case TrackerNotWorking:
		return "not working"
	}
	return "unknown"
}

// TorrentListFilter narrows a torrent listing by state, server-side.
type TorrentListFilter string

const (
	FilterAll                TorrentListFilter = "all"
	FilterDownloading        TorrentListFilter = "downloading"
	FilterSeeding            TorrentListFilter = "seeding"
	FilterCompleted          TorrentListFilter = "completed"
	FilterPaused             TorrentListFilter = "paused"
	FilterActive             TorrentListFilter = "active"
	FilterInactive           TorrentListFilter = "inactive"
	FilterResumed            TorrentListFilter = "resumed"
	FilterStalled            TorrentListFilter = "stalled"
	FilterStalledUploading   TorrentListFilter = "stalled_uploading"
	FilterStalledDownloading TorrentListFilter = "stalled_downloading"
	FilterErrored            TorrentListFilter = "errored"
)

// TorrentListOptions narrows the torrents/info listing. The zero value
// requests everything.
type TorrentListOptions struct {
	// Filter torrents by state.
	Filter TorrentListFilter

	// Category returns only torrents with the given category.
	Category string

	// Tag returns only torrents with the given tag.
	Tag string

	// Sort by the given torrents/info field name.
	Sort string

	// Reverse enables reverse sorting.
	Reverse bool

	// Limit the number of results.
	Limit int

	// Offset into the results.
	Offset int

	// Hashes restricts the listing to the given torrent hashes.
	Hashes []string
}

// values encodes the options as query parameters, omitting unset fields.
func (o TorrentListOptions) values() url.Values {
	params := url.Values{}

	if o.Filter != "" {
		params.Set("filter", string(o.Filter))
	}
	if o.Category != "" {
		params.Set("category", o.Category)
	}
	if o.Tag != "" {
		params.Set("tag", o.Tag)
	}
	if o.Sort != "" {
		params.Set("sort", o.Sort)
	}
	if o.Reverse {
		params.Set("reverse", "true")
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset != 0 {
		params.Set("offset", strconv.Itoa(o.Offset))
	}
	if len(o.Hashes) > 0 {
		params.Set("hashes", strings.Join(o.Hashes, "|"))
	}

	return params
}
