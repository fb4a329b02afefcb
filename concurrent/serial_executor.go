/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package concurrent

import (
	"sync"
	"time"
)

//===----------------------------------------------------------------------------------------====//
// serialTask
//===----------------------------------------------------------------------------------------====//

// Task states
const (
	taskQueued int32 = iota
	taskRunning
	taskDone
)

// serialTask implements TaskHandle for Task executed in a SerialExecutor.
type serialTask struct {
	Task

	// Lock that guards state, result and err.
	mutex sync.Mutex
	state int32

	// Closed when result is available
	done chan struct{}

	result interface{}
	err    error
}

var _ TaskHandle = (*serialTask)(nil)

func newSerialTask(task Task) *serialTask {
	return &serialTask{
		Task: task,
		done: make(chan struct{}),
	}
}

// start marks the task running. Return false if the task was cancelled.
func (task *serialTask) start() bool {
	task.mutex.Lock()
	defer task.mutex.Unlock()
	if task.state != taskQueued {
		return false
	}
	task.state = taskRunning
	return true
}

func (task *serialTask) setResult(result interface{}, err error) {
	task.mutex.Lock()
	task.state = taskDone
	task.result, task.err = result, err
	task.mutex.Unlock()
	close(task.done)
}

// Cancel implements TaskHandle.
func (task *serialTask) Cancel() error {
	task.mutex.Lock()
	if task.state != taskQueued {
		task.mutex.Unlock()
		return ErrTaskNotCancellable
	}
	task.state = taskDone
	task.err = ErrTaskCancelled
	task.mutex.Unlock()
	close(task.done)
	return nil
}

// AwaitResult implements TaskHandle.
func (task *serialTask) AwaitResult(timeout time.Duration) (interface{}, error) {
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-task.done:
		case <-timer.C:
			return nil, ErrAwaitTaskResultTimeout
		}
	} else {
		<-task.done
	}

	task.mutex.Lock()
	defer task.mutex.Unlock()
	return task.result, task.err
}

//===----------------------------------------------------------------------------------------====//
// SerialExecutor
//===----------------------------------------------------------------------------------------====//

// SerialExecutor runs tasks one at a time in submission order on a single goroutine. It serves as
// the single writer for state that must observe mutations in a total order.
type SerialExecutor struct {
	// Lock that guards closed and the send side of tasks.
	mutex  sync.Mutex
	closed bool

	tasks      chan *serialTask
	terminated chan struct{}
}

var _ Executor = (*SerialExecutor)(nil)

// NewSerialExecutor starts a SerialExecutor. queueSize is the number of tasks that can be queued
// before Submit blocks; 0 makes every Submit wait for the worker to pick up the task.
func NewSerialExecutor(queueSize int) *SerialExecutor {
	executor := &SerialExecutor{
		tasks:      make(chan *serialTask, queueSize),
		terminated: make(chan struct{}),
	}
	go executor.run()
	return executor
}

func (executor *SerialExecutor) run() {
	defer close(executor.terminated)
	for task := range executor.tasks {
		if !task.start() {
			// Cancelled while waiting in queue.
			continue
		}
		task.setResult(runTask(task.Task))
	}
}

// runTask runs task and converts a panic into a PanicError.
func runTask(task Task) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &PanicError{Value: r}
		}
	}()
	return task.Run()
}

// Submit implements Executor.
func (executor *SerialExecutor) Submit(task Task) (TaskHandle, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	if executor.closed {
		return nil, ErrExecutorShutdown
	}

	handle := newSerialTask(task)
	executor.tasks <- handle
	return handle, nil
}

// Shutdown implements Executor.
func (executor *SerialExecutor) Shutdown() (<-chan struct{}, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	if !executor.closed {
		executor.closed = true
		close(executor.tasks)
	}
	return executor.terminated, nil
}
