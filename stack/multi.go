// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package stack

// PushN pushes values in order, so the last value ends up on top. Either all
// values are pushed or none are.
func (s *Stack) PushN(values ...Word) (err error) {
	if len(values) > s.Available() {
		err = ErrNeed{Need: len(values), Avail: s.Available(), Err: ErrCapacityExceeded}
		return
	}

	copy(s.data[s.sp:], values)
	s.sp += len(values)
	s.touch()

	return
}

// PopN fills dst with the top len(dst) words, former top first. Either all
// words are popped or none are.
func (s *Stack) PopN(dst []Word) (err error) {
	if len(dst) > s.sp {
		err = ErrNeed{Need: len(dst), Avail: s.sp, Err: ErrUnderflow}
		return
	}

	for n := range dst {
		dst[n] = s.data[s.sp-1-n]
	}
	s.sp -= len(dst)
	s.epoch++

	return
}

// Push2 pushes a two word frame; v1 ends up on top.
func (s *Stack) Push2(v0, v1 Word) error {
	return s.PushN(v0, v1)
}

// Push3 pushes a three word frame; v2 ends up on top.
func (s *Stack) Push3(v0, v1, v2 Word) error {
	return s.PushN(v0, v1, v2)
}

// Push4 pushes a four word frame; v3 ends up on top.
func (s *Stack) Push4(v0, v1, v2, v3 Word) error {
	return s.PushN(v0, v1, v2, v3)
}

// Push5 pushes a five word frame; v4 ends up on top.
func (s *Stack) Push5(v0, v1, v2, v3, v4 Word) error {
	return s.PushN(v0, v1, v2, v3, v4)
}

// Pop2 pops two words; r0 was the top.
func (s *Stack) Pop2() (r0, r1 Word, err error) {
	var buf [2]Word
	err = s.PopN(buf[:])
	if err != nil {
		return
	}

	r0, r1 = buf[0], buf[1]
	return
}

// Pop3 pops three words; r0 was the top.
func (s *Stack) Pop3() (r0, r1, r2 Word, err error) {
	var buf [3]Word
	err = s.PopN(buf[:])
	if err != nil {
		return
	}

	r0, r1, r2 = buf[0], buf[1], buf[2]
	return
}

// Pop4 pops four words; r0 was the top.
func (s *Stack) Pop4() (r0, r1, r2, r3 Word, err error) {
	var buf [4]Word
	err = s.PopN(buf[:])
	if err != nil {
		return
	}

	r0, r1, r2, r3 = buf[0], buf[1], buf[2], buf[3]
	return
}

// Pop5 pops five words; r0 was the top.
func (s *Stack) Pop5() (r0, r1, r2, r3, r4 Word, err error) {
	var buf [5]Word
	err = s.PopN(buf[:])
	if err != nil {
		return
	}

	r0, r1, r2, r3, r4 = buf[0], buf[1], buf[2], buf[3], buf[4]
	return
}
