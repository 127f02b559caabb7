package qbittorrent

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// quoteEscaper escapes quoted-string values in part headers, matching what
// multipart.Writer.CreateFormFile does for filenames.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// TorrentFile is a torrent file to upload, as a name and raw bytes.
type TorrentFile struct {
	Name string
	Data []byte
}

// TorrentAddOptions describes a torrents/add request. At least one URL or
// file must be present; all other fields are optional and omitted from the
// upload when unset.
type TorrentAddOptions struct {
	// URLs of torrents to add: http(s) links to .torrent files or magnet links.
	URLs []string

	// Files holds torrent file contents to upload.
	Files []TorrentFile

	// SavePath is the download folder.
	SavePath string

	// Cookie sent when downloading the .torrent file from a URL.
	Cookie string

	// Category for the torrents.
	Category string

	// Tags for the torrents.
	Tags []string

	// SkipChecking skips hash checking.
	SkipChecking bool

	// Paused adds the torrents in the paused state.
	Paused bool

	// RootFolder creates the root folder.
	RootFolder bool

	// Rename the torrent.
	Rename string

	// UploadLimit in bytes/second.
	UploadLimit int64

	// DownloadLimit in bytes/second.
	DownloadLimit int64

	// RatioLimit is the share ratio limit.
	RatioLimit float64

	// SeedingTimeLimit in seconds.
	SeedingTimeLimit int64

	// AutoTMM enables Automatic Torrent Management.
	AutoTMM bool

	// SequentialDownload enables sequential download.
	SequentialDownload bool

	// FirstLastPiecePrio prioritizes the first and last pieces.
	FirstLastPiecePrio bool
}

// AddURL appends a torrent URL or magnet link to the upload.
func (o *TorrentAddOptions) AddURL(url string) *TorrentAddOptions {
	o.URLs = append(o.URLs, url)
	return o
}

// AddFileData appends a torrent file from raw bytes.
func (o *TorrentAddOptions) AddFileData(name string, data []byte) *TorrentAddOptions {
	o.Files = append(o.Files, TorrentFile{Name: name, Data: data})
	return o
}

// AddFile reads a .torrent file from disk and appends it to the upload.
func (o *TorrentAddOptions) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read torrent file: %w", err)
	}
	o.AddFileData(filepath.Base(path), data)
	return nil
}

// encode writes the options as a multipart form to w and returns the form's
// content type.
func (o *TorrentAddOptions) encode(w io.Writer) (string, error) {
	if len(o.URLs) == 0 && len(o.Files) == 0 {
		return "", fmt.Errorf("either URLs or torrent files must be set")
	}

	form := multipart.NewWriter(w)

	if len(o.URLs) > 0 {
		if err := form.WriteField("urls", strings.Join(o.URLs, "\n")); err != nil {
			return "", err
		}
	}

	for _, file := range o.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="torrents"; filename="%s"`, quoteEscaper.Replace(file.Name)))
		header.Set("Content-Type", "application/x-bittorrent")

		part, err := form.CreatePart(header)
		if err != nil {
			return "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return "", err
		}
	}

	fields := map[string]string{}
	if o.SavePath != "" {
		fields["savepath"] = o.SavePath
	}
	if o.Cookie != "" {
		fields["cookie"] = o.Cookie
	}
	if o.Category != "" {
		fields["category"] = o.Category
	}
	if len(o.Tags) > 0 {
		fields["tags"] = strings.Join(o.Tags, ",")
	}
	if o.SkipChecking {
		fields["skip_checking"] = "true"
	}
	if o.Paused {
		fields["paused"] = "true"
	}
	if o.RootFolder {
		fields["root_folder"] = "true"
	}
	if o.Rename != "" {
		fields["rename"] = o.Rename
	}
	if o.UploadLimit > 0 {
		fields["upLimit"] = strconv.FormatInt(o.UploadLimit, 10)
	}
	if o.DownloadLimit > 0 {
		fields["dlLimit"] = strconv.FormatInt(o.DownloadLimit, 10)
	}
	if o.RatioLimit > 0 {
		fields["ratioLimit"] = strconv.FormatFloat(o.RatioLimit, 'f', -1, 64)
	}
	if o.SeedingTimeLimit > 0 {
		fields["seedingTimeLimit"] = strconv.FormatInt(o.SeedingTimeLimit, 10)
	}
	if o.AutoTMM {
		fields["autoTMM"] = "true"
	}
	if o.SequentialDownload {
		fields["sequentialDownload"] = "true"
	}
	if o.FirstLastPiecePrio {
		fields["firstLastPiecePrio"] = "true"
	}

	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return "", err
		}
	}

	if err := form.Close(); err != nil {
		return "", err
	}

	return form.FormDataContentType(), nil
}
