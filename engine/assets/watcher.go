package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/lumen/engine/assets/loaders"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

var (
	ErrManagerClosed    = errors.New("asset manager already closed")
	ErrUnknownAssetType = errors.New("unknown asset type")
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager loads assets through registered loaders and, once an asset is
// watched, loads it again whenever its file is written. Reloaded resources
// are delivered on Reloads and must be consumed by the update loop.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader
	watched map[string]int

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	reloads  chan *metadata.Resource
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		watched:  make(map[string]int),
		fsnotify: fsWatch,
		reloads:  make(chan *metadata.Resource, 8),
		done:     make(chan struct{}),
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeScene, &loaders.SceneLoader{})

	am.wg.Add(1)
	go am.start()
	return am, nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Reloads delivers assets that were loaded again after a change on disk.
func (am *AssetManager) Reloads() <-chan *metadata.Resource {
	return am.reloads
}

// LoadAsset loads the file at path with the loader of its type. The type is
// derived from the file extension.
func (am *AssetManager) LoadAsset(path string, params interface{}) (*metadata.Resource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	assetType := determineAssetType(abs)
	if assetType == metadata.ResourceTypeNone {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAssetType, path)
	}

	am.mutex.RLock()
	loader, loaderExists := am.loaders[assetType]
	am.mutex.RUnlock()
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", assetType)
	}

	resource, err := loader.Load(abs, assetType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[abs] = AssetInfo{
		Path:       abs,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()
	return resource, nil
}

// Watch reloads path whenever it changes. The asset must be loaded first.
func (am *AssetManager) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		return ErrManagerClosed
	}
	if _, ok := am.assets[abs]; !ok {
		return fmt.Errorf("asset not loaded: %s", path)
	}

	// Watch the directory: editors often replace files instead of writing them.
	dir := filepath.Dir(abs)
	if am.watched[dir] == 0 {
		if err := am.fsnotify.Add(dir); err != nil {
			return err
		}
	}
	am.watched[dir]++
	core.LogDebug("watching %s for changes", abs)
	return nil
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-am.done:
			return
		}
	}
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	path = filepath.Clean(path)

	am.mutex.RLock()
	asset, tracked := am.assets[path]
	am.mutex.RUnlock()
	if !tracked {
		return
	}

	resource, err := am.LoadAsset(asset.Path, nil)
	if err != nil {
		// A half-written file fails to parse; the next write event retries.
		core.LogWarn("reloading %s failed: %s", path, err.Error())
		return
	}
	core.LogInfo("reloaded %s", path)

	select {
	case am.reloads <- resource:
	case <-am.done:
	default:
		core.LogWarn("reload of %s dropped, previous reloads not consumed", path)
	}
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	close(am.done)
	am.mutex.Unlock()

	err := am.fsnotify.Close()
	am.wg.Wait()
	return err
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return metadata.ResourceTypeScene
	default:
		return metadata.ResourceTypeNone
	}
}
