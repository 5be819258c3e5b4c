package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/remiges-tech/rigel"
	"github.com/remiges-tech/rigel/etcd"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// Config is an interface that represents a source from which application configuration can be loaded.
type Config interface {
	LoadConfig(c any) error
	Check() error
}

// Load first ensures that the config system valid and accessible. Then it loads the config into c.
func Load(cs Config, c any) error {
	if err := cs.Check(); err != nil {
		return err
	}
	return cs.LoadConfig(c)
}

// File

type File struct {
	ConfigFilePath string
}

func (f *File) Check() error {
	if f.ConfigFilePath == "" {
		return fmt.Errorf("configFilePath cannot be empty")
	}

	return nil
}

// LoadConfig decodes the JSON file into appConfig. Keys the struct does not
// declare are rejected so a misspelt setting does not go unnoticed.
func (f *File) LoadConfig(appConfig any) error {
	content, err := os.ReadFile(f.ConfigFilePath)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(appConfig); err != nil {
		return fmt.Errorf("decoding %s: %w", f.ConfigFilePath, err)
	}
	return nil
}

// Rigel

// Loader is the part of a rigel client the Rigel source reads through.
// *rigel.Rigel implements it: the config named at construction is read from
// etcd, typed by its schema and unmarshalled into configStruct.
type Loader interface {
	LoadConfig(ctx context.Context, configStruct any) error
}

// Rigel loads the application config from a rigel config.
type Rigel struct {
	Client  Loader
	Timeout time.Duration
}

func (r *Rigel) Check() error {
	if r.Client == nil {
		return fmt.Errorf("rigel client cannot be nil")
	}
	return nil
}

func (r *Rigel) LoadConfig(appConfig any) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := r.Client.LoadConfig(ctx, appConfig); err != nil {
		return fmt.Errorf("loading rigel config: %w", err)
	}
	return nil
}

// NewRigelClient connects a rigel client for app/module/version/configName to etcd.
func NewRigelClient(etcdEndpoints []string, app, module string, version int, configName string) (*rigel.Rigel, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   etcdEndpoints,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	etcdStorage := &etcd.EtcdStorage{Client: cli}
	return rigel.New(etcdStorage, app, module, version, configName), nil
}
