// Package gdrive mirrors note backups to the Google Drive application data
// folder. Objects live in the hidden appDataFolder space and are addressed by
// file name, so a key maps to at most one live (non-trashed) file.
package gdrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/keepnotes/keep-note-service/pkg/fileurl"
	"github.com/keepnotes/keep-note-service/pkg/util"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const authCallbackAddr = "127.0.0.1:34115"

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	CredentialsFile string `yaml:"credentials-file"`
	TokenFile       string `yaml:"token-file"`
}

type GDrive struct {
	Config *Config

	mu          sync.Mutex
	oauthConfig *oauth2.Config
	service     *drive.Service
}

// NewClient loads the OAuth application credentials and, when a cached token
// exists, restores the Drive session. A missing token is not an error; the
// client stays signed out until SignIn completes.
func NewClient(conf *Config) (*GDrive, error) {
	if conf.CredentialsFile == "" {
		return nil, errors.New("gdrive: credentials-file is required")
	}

	credentials, err := os.ReadFile(conf.CredentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "gdrive: read credentials")
	}

	oauthConfig, err := google.ConfigFromJSON(credentials, drive.DriveAppdataScope)
	if err != nil {
		return nil, errors.Wrap(err, "gdrive: parse credentials")
	}

	g := &GDrive{Config: conf, oauthConfig: oauthConfig}

	if token, err := g.loadToken(); err == nil {
		if err := g.initService(context.Background(), token); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *GDrive) loadToken() (*oauth2.Token, error) {
	f, err := os.Open(g.Config.TokenFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func (g *GDrive) saveToken(token *oauth2.Token) error {
	if err := fileurl.CreatePath(g.Config.TokenFile, os.ModePerm); err != nil {
		return errors.Wrap(err, "gdrive")
	}
	f, err := os.OpenFile(g.Config.TokenFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "gdrive: cache token")
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

func (g *GDrive) initService(ctx context.Context, token *oauth2.Token) error {
	// TokenSource keeps the access token refreshed in the background.
	client := oauth2.NewClient(ctx, g.oauthConfig.TokenSource(ctx, token))
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return errors.Wrap(err, "gdrive: init service")
	}

	g.mu.Lock()
	g.service = srv
	g.mu.Unlock()
	return nil
}

// IsSignedIn reports whether a Drive session is available.
func (g *GDrive) IsSignedIn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.service != nil
}

// SignIn runs the OAuth authorization-code flow. It prints the consent URL,
// waits for the redirect on a local callback listener, exchanges the code and
// caches the token for later sessions.
func (g *GDrive) SignIn(ctx context.Context) error {
	if g.IsSignedIn() {
		return nil
	}

	g.oauthConfig.RedirectURL = "http://" + authCallbackAddr + "/"

	state := util.GetRandomString(16)
	codeChan := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "authorization code missing", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authentication complete. You can close this window.")
		select {
		case codeChan <- code:
		default:
		}
	})
	server := &http.Server{Addr: authCallbackAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "gdrive auth server error: %v\n", err)
		}
	}()
	defer server.Shutdown(ctx)

	authURL := g.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL to authorize Google Drive access:\n%s\n", authURL)

	select {
	case code := <-codeChan:
		token, err := g.oauthConfig.Exchange(ctx, code)
		if err != nil {
			return errors.Wrap(err, "gdrive: exchange code")
		}
		if err := g.saveToken(token); err != nil {
			return err
		}
		return g.initService(ctx, token)
	case <-time.After(3 * time.Minute):
		return errors.New("gdrive: authentication timed out")
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "gdrive")
	}
}

// SignOut drops the Drive session and removes the cached token.
func (g *GDrive) SignOut() error {
	g.mu.Lock()
	g.service = nil
	g.mu.Unlock()

	if err := os.Remove(g.Config.TokenFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "gdrive: remove token")
	}
	return nil
}

func (g *GDrive) driveService() (*drive.Service, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.service == nil {
		return nil, errors.New("gdrive: not signed in")
	}
	return g.service, nil
}

// findFile resolves a key to the live file ID, or "" when absent.
func (g *GDrive) findFile(srv *drive.Service, name string) (string, error) {
	query := fmt.Sprintf("name='%s' and trashed=false", name)
	list, err := srv.Files.List().
		Q(query).
		Spaces("appDataFolder").
		Fields("files(id, name)").
		Do()
	if err != nil {
		return "", errors.Wrap(err, "gdrive: list files")
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (g *GDrive) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	srv, err := g.driveService()
	if err != nil {
		return "", err
	}

	fileID, err := g.findFile(srv, pathKey)
	if err != nil {
		return "", err
	}

	if fileID == "" {
		f := &drive.File{
			Name:     pathKey,
			Parents:  []string{"appDataFolder"},
			MimeType: "application/json",
		}
		_, err = srv.Files.Create(f).Media(bytes.NewReader(content)).Do()
		if err != nil {
			return "", errors.Wrap(err, "gdrive: create file")
		}
		return pathKey, nil
	}

	_, err = srv.Files.Update(fileID, &drive.File{}).Media(bytes.NewReader(content)).Do()
	if err != nil {
		return "", errors.Wrap(err, "gdrive: update file")
	}
	return pathKey, nil
}

func (g *GDrive) GetContent(pathKey string) ([]byte, error) {
	srv, err := g.driveService()
	if err != nil {
		return nil, err
	}

	fileID, err := g.findFile(srv, pathKey)
	if err != nil {
		return nil, err
	}
	if fileID == "" {
		return nil, errors.Wrap(fs.ErrNotExist, "gdrive")
	}

	resp, err := srv.Files.Get(fileID).Download()
	if err != nil {
		return nil, errors.Wrap(err, "gdrive: download file")
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "gdrive: read body")
	}
	return content, nil
}

func (g *GDrive) Delete(pathKey string) error {
	srv, err := g.driveService()
	if err != nil {
		return err
	}

	fileID, err := g.findFile(srv, pathKey)
	if err != nil {
		return err
	}
	if fileID == "" {
		return nil
	}

	if err := srv.Files.Delete(fileID).Do(); err != nil {
		return errors.Wrap(err, "gdrive: delete file")
	}
	return nil
}
