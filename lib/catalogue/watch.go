// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"context"
	"encoding/binary"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// Update is one result from [Watch]: either a newly validated catalogue
// or the error that prevented the changed file from loading.
type Update struct {
	Catalogue *Catalogue
	Digest    Digest
	Err       error
}

// Watch starts an inotify watcher on fetcher's file and sends an Update
// each time its content changes. Rewrites whose bytes hash to the same
// digest as the last observed content (starting from initial) produce
// nothing. The returned cleanup function stops the watcher and is safe
// to call more than once.
//
// The parent directory is watched for IN_CLOSE_WRITE and IN_MOVED_TO on
// the target name, which covers both in-place writes and atomic
// renames.
func Watch(fetcher *FileFetcher, initial Digest) (<-chan Update, func(), error) {
	absolutePath, err := filepath.Abs(fetcher.Path)
	if err != nil {
		return nil, nil, err
	}
	target := &FileFetcher{Path: absolutePath, Identities: fetcher.Identities}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, nil, err
	}
	_, err = unix.InotifyAddWatch(fd, filepath.Dir(absolutePath), unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO)
	if err != nil {
		unix.Close(fd)
		return nil, nil, err
	}

	updates := make(chan Update)
	stopChannel := make(chan struct{})
	go watchLoop(fd, target, filepath.Base(absolutePath), initial, updates, stopChannel)

	cleanedUp := false
	cleanup := func() {
		if cleanedUp {
			return
		}
		cleanedUp = true
		close(stopChannel)
	}
	return updates, cleanup, nil
}

// watchLoop polls the inotify fd with a 100ms timeout so the stop
// channel is checked promptly. After a matching event it waits 50ms and
// drains queued events, coalescing editors that write several times
// per save. The updates channel is closed when the loop exits.
func watchLoop(
	fd int,
	fetcher *FileFetcher,
	filename string,
	previous Digest,
	updates chan<- Update,
	stopChannel <-chan struct{},
) {
	defer close(updates)
	defer unix.Close(fd)

	buffer := make([]byte, 4096)

	for {
		select {
		case <-stopChannel:
			return
		default:
		}

		pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(pollDescriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			// Fatal poll error: the browser keeps its current catalogue.
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if !inotifyMatchesFile(buffer[:bytesRead], filename) {
			continue
		}

		time.Sleep(50 * time.Millisecond)
		drainInotifyEvents(fd, buffer)

		data, err := fetcher.Fetch(context.Background())
		if err != nil {
			// Mid-write or briefly absent during an atomic replace.
			// The completing write raises another event.
			continue
		}
		digest := DigestOf(data)
		if digest == previous {
			continue
		}
		previous = digest

		update := Update{Digest: digest}
		update.Catalogue, update.Err = Parse(data)

		select {
		case updates <- update:
		case <-stopChannel:
			return
		}
	}
}

// inotifyMatchesFile reports whether any event in buffer names
// targetFilename. Event layout from inotify(7): wd int32, mask uint32,
// cookie uint32, len uint32, then len bytes of null-padded name.
func inotifyMatchesFile(buffer []byte, targetFilename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}
		if nameLength > 0 {
			name := nullTerminatedString(buffer[offset+unix.SizeofInotifyEvent : offset+eventSize])
			if name == targetFilename {
				return true
			}
		}
		offset += eventSize
	}
	return false
}

func nullTerminatedString(data []byte) string {
	for index, value := range data {
		if value == 0 {
			return string(data[:index])
		}
	}
	return string(data)
}

func drainInotifyEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
