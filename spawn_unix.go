// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package execbatch

import (
	"syscall"
)

// sysProcAttr projects the detached flag and uid/gid credentials into the
// platform spawn attributes. Returns nil when none of them are set.
func sysProcAttr(r resolvedOptions) *syscall.SysProcAttr {
	if !r.detached && r.uid == nil && r.gid == nil {
		return nil
	}

	attr := &syscall.SysProcAttr{
		Setsid: r.detached,
	}

	if r.uid != nil || r.gid != nil {
		cred := &syscall.Credential{}

		if r.uid != nil {
			cred.Uid = uint32(*r.uid)
		}

		if r.gid != nil {
			cred.Gid = uint32(*r.gid)
		}

		attr.Credential = cred
	}

	return attr
}
