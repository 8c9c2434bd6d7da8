// Package main provides the catalog CLI entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	apiconnect "github.com/osa030/unqfy/internal/api/connect"
)

var (
	app    = kingpin.New("unqfycli", "UNQfy music catalog client")
	server = app.Flag("server", "Server address (or set UNQFY_SERVER env)").Envar("UNQFY_SERVER").Default("http://localhost:5000").String()

	addArtistCmd     = app.Command("add-artist", "Register an artist")
	addArtistName    = addArtistCmd.Arg("name", "Artist name").Required().String()
	addArtistCountry = addArtistCmd.Arg("country", "Artist country").String()

	addAlbumCmd    = app.Command("add-album", "Add an album to an artist")
	addAlbumArtist = addAlbumCmd.Arg("artist", "Artist name").Required().String()
	addAlbumName   = addAlbumCmd.Arg("name", "Album name").Required().String()
	addAlbumYear   = addAlbumCmd.Arg("year", "Release year").Int()

	addTrackCmd      = app.Command("add-track", "Add a track to an album")
	addTrackAlbum    = addTrackCmd.Arg("album", "Album name").Required().String()
	addTrackName     = addTrackCmd.Arg("name", "Track name").Required().String()
	addTrackDuration = addTrackCmd.Arg("duration", "Duration in seconds").Required().Int()
	addTrackGenre    = addTrackCmd.Arg("genre", "Genre").String()

	getArtistCmd   = app.Command("get-artist", "Show an artist by name or --id")
	getArtistName  = getArtistCmd.Arg("name", "Artist name").String()
	getArtistIDSet bool
	getArtistID    = getArtistCmd.Flag("id", "Artist ID").IsSetByUser(&getArtistIDSet).Int()

	listArtistsCmd = app.Command("list-artists", "List all artists").Alias("artists")

	getAlbumCmd  = app.Command("get-album", "Show an album")
	getAlbumName = getAlbumCmd.Arg("name", "Album name").Required().String()

	getTrackCmd  = app.Command("get-track", "Show a track")
	getTrackName = getTrackCmd.Arg("name", "Track name").Required().String()

	tracksCmd    = app.Command("tracks", "List tracks of an artist or matching genres")
	tracksArtist = tracksCmd.Flag("artist", "Artist name").String()
	tracksGenres = tracksCmd.Flag("genre", "Genre (repeatable)").Strings()

	addPlaylistCmd    = app.Command("add-playlist", "Build a playlist from genres")
	addPlaylistName   = addPlaylistCmd.Arg("name", "Playlist name").Required().String()
	addPlaylistMax    = addPlaylistCmd.Arg("max-duration", "Maximum duration in seconds").Required().Int()
	addPlaylistGenres = addPlaylistCmd.Arg("genres", "Genres").Strings()

	getPlaylistCmd  = app.Command("get-playlist", "Show a playlist")
	getPlaylistName = getPlaylistCmd.Arg("name", "Playlist name").Required().String()

	removeArtistCmd = app.Command("remove-artist", "Remove an artist and everything it owns")
	removeArtistID  = removeArtistCmd.Arg("id", "Artist ID").Required().Int()

	populateCmd    = app.Command("populate-albums", "Fetch an artist's albums from the configured sources")
	populateArtist = populateCmd.Arg("artist", "Artist name").Required().String()

	lyricsCmd   = app.Command("lyrics", "Show a track's lyrics")
	lyricsTrack = lyricsCmd.Arg("track", "Track name").Required().String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	client := apiconnect.NewCatalogClient(http.DefaultClient, strings.TrimSuffix(*server, "/"))
	ctx := context.Background()

	var err error
	switch command {
	case addArtistCmd.FullCommand():
		err = addArtist(ctx, client)
	case addAlbumCmd.FullCommand():
		err = addAlbum(ctx, client)
	case addTrackCmd.FullCommand():
		err = addTrack(ctx, client)
	case getArtistCmd.FullCommand():
		err = getArtist(ctx, client)
	case listArtistsCmd.FullCommand():
		err = listArtists(ctx, client)
	case getAlbumCmd.FullCommand():
		err = getAlbum(ctx, client)
	case getTrackCmd.FullCommand():
		err = getTrack(ctx, client)
	case tracksCmd.FullCommand():
		err = listTracks(ctx, client)
	case addPlaylistCmd.FullCommand():
		err = addPlaylist(ctx, client)
	case getPlaylistCmd.FullCommand():
		err = getPlaylist(ctx, client)
	case removeArtistCmd.FullCommand():
		err = removeArtist(ctx, client)
	case populateCmd.FullCommand():
		err = populateAlbums(ctx, client)
	case lyricsCmd.FullCommand():
		err = lyrics(ctx, client)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func addArtist(ctx context.Context, client *apiconnect.CatalogClient) error {
	a, err := client.AddArtist(ctx, &apiconnect.AddArtistRequest{
		Name:    *addArtistName,
		Country: *addArtistCountry,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Artist added: id=%d name=%s\n", a.ID, a.Name)
	return nil
}

func addAlbum(ctx context.Context, client *apiconnect.CatalogClient) error {
	al, err := client.AddAlbum(ctx, &apiconnect.AddAlbumRequest{
		Artist: *addAlbumArtist,
		Name:   *addAlbumName,
		Year:   *addAlbumYear,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Album added: %s (%d)\n", al.Name, al.Year)
	return nil
}

func addTrack(ctx context.Context, client *apiconnect.CatalogClient) error {
	t, err := client.AddTrack(ctx, &apiconnect.AddTrackRequest{
		Album:    *addTrackAlbum,
		Name:     *addTrackName,
		Duration: *addTrackDuration,
		Genre:    *addTrackGenre,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Track added: id=%s name=%s\n", t.ID, t.Name)
	return nil
}

func getArtist(ctx context.Context, client *apiconnect.CatalogClient) error {
	req := &apiconnect.GetArtistRequest{Name: *getArtistName}
	if getArtistIDSet {
		req.ID = getArtistID
	}
	a, err := client.GetArtist(ctx, req)
	if err != nil {
		return err
	}
	printArtist(a)
	return nil
}

func listArtists(ctx context.Context, client *apiconnect.CatalogClient) error {
	resp, err := client.ListArtists(ctx)
	if err != nil {
		return err
	}
	if len(resp.Artists) == 0 {
		fmt.Println("No artists")
		return nil
	}
	for i := range resp.Artists {
		printArtist(&resp.Artists[i])
	}
	return nil
}

func getAlbum(ctx context.Context, client *apiconnect.CatalogClient) error {
	al, err := client.GetAlbum(ctx, &apiconnect.GetAlbumRequest{Name: *getAlbumName})
	if err != nil {
		return err
	}
	printAlbum(*al, "")
	return nil
}

func getTrack(ctx context.Context, client *apiconnect.CatalogClient) error {
	t, err := client.GetTrack(ctx, &apiconnect.GetTrackRequest{Name: *getTrackName})
	if err != nil {
		return err
	}
	printTrack(*t, "")
	return nil
}

func listTracks(ctx context.Context, client *apiconnect.CatalogClient) error {
	resp, err := client.ListTracks(ctx, &apiconnect.ListTracksRequest{
		Artist: *tracksArtist,
		Genres: *tracksGenres,
	})
	if err != nil {
		return err
	}
	if len(resp.Tracks) == 0 {
		fmt.Println("No tracks")
		return nil
	}
	for _, t := range resp.Tracks {
		printTrack(t, "")
	}
	return nil
}

func addPlaylist(ctx context.Context, client *apiconnect.CatalogClient) error {
	p, err := client.AddPlaylist(ctx, &apiconnect.AddPlaylistRequest{
		Name:        *addPlaylistName,
		Genres:      *addPlaylistGenres,
		MaxDuration: *addPlaylistMax,
	})
	if err != nil {
		return err
	}
	printPlaylist(p)
	return nil
}

func getPlaylist(ctx context.Context, client *apiconnect.CatalogClient) error {
	p, err := client.GetPlaylist(ctx, &apiconnect.GetPlaylistRequest{Name: *getPlaylistName})
	if err != nil {
		return err
	}
	printPlaylist(p)
	return nil
}

func removeArtist(ctx context.Context, client *apiconnect.CatalogClient) error {
	if err := client.RemoveArtist(ctx, &apiconnect.RemoveArtistRequest{ID: *removeArtistID}); err != nil {
		return err
	}
	fmt.Printf("Artist removed: id=%d\n", *removeArtistID)
	return nil
}

func populateAlbums(ctx context.Context, client *apiconnect.CatalogClient) error {
	resp, err := client.PopulateAlbums(ctx, &apiconnect.PopulateAlbumsRequest{Artist: *populateArtist})
	if err != nil {
		return err
	}
	fmt.Printf("Albums added: %d\n", len(resp.Albums))
	for _, al := range resp.Albums {
		fmt.Printf("  %s (%d)\n", al.Name, al.Year)
	}
	return nil
}

func lyrics(ctx context.Context, client *apiconnect.CatalogClient) error {
	resp, err := client.GetLyrics(ctx, &apiconnect.GetLyricsRequest{Track: *lyricsTrack})
	if err != nil {
		return err
	}
	fmt.Printf("=== %s ===\n%s\n", resp.Track, resp.Lyrics)
	return nil
}

func printArtist(a *apiconnect.ArtistMessage) {
	fmt.Printf("[%d] %s", a.ID, a.Name)
	if a.Country != "" {
		fmt.Printf(" (%s)", a.Country)
	}
	fmt.Println()
	for _, al := range a.Albums {
		printAlbum(al, "  ")
	}
}

func printAlbum(al apiconnect.AlbumMessage, indent string) {
	fmt.Printf("%s%s (%d)\n", indent, al.Name, al.Year)
	for _, t := range al.Tracks {
		printTrack(t, indent+"  ")
	}
}

func printTrack(t apiconnect.TrackMessage, indent string) {
	fmt.Printf("%s%s [%s] %s", indent, t.Name, t.Genre, formatDuration(t.Duration))
	if t.HasLyrics {
		fmt.Print(" *lyrics*")
	}
	fmt.Println()
}

func printPlaylist(p *apiconnect.PlaylistMessage) {
	fmt.Printf("%s: %s / %s\n", p.Name, formatDuration(p.Duration), formatDuration(p.MaxDuration))
	for _, t := range p.Tracks {
		printTrack(t, "  ")
	}
}

// formatDuration formats seconds as m:ss.
func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
