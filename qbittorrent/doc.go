// Package qbittorrent provides a typed client for the qBittorrent WebUI API.
//
// The client speaks the upstream api/v2 HTTP interface directly: cookie-based
// authentication, torrent listing and removal, torrent addition (multipart
// file upload or magnet/URL), tracker editing and tag management. Endpoints
// outside that set (preferences, transfer limits, RSS, search, sync) are not
// covered.
//
// # Usage
//
//	client, err := qbittorrent.NewClient("http://localhost:8080", "admin", "adminadmin", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := client.Login(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	torrents, err := client.GetTorrents(ctx, qbittorrent.TorrentListOptions{
//	    Filter: qbittorrent.FilterSeeding,
//	})
//
// Login must be called before any other method; there is no automatic session
// renewal. A call that comes back 403 returns ErrUnauthenticated so callers
// can detect an expired session and log in again.
//
// The session cookie is written only by Login and guarded by a lock, so a
// logged-in client is safe for concurrent use.
package qbittorrent
