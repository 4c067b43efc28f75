package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
	. "src.rsed.sh/pkg/store/storedefs"
)

// NextCmdSeq returns the sequence number that the next AddCmd will use.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketCmd)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd adds a command line to the history and returns its sequence number.
func (s *dbStore) AddCmd(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

// DelCmd deletes the command line with the given sequence number. Deleting a
// nonexistent entry is not an error.
func (s *dbStore) DelCmd(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCmd)).Delete(marshalSeq(uint64(seq)))
	})
}

// Cmd returns the command line with the given sequence number.
func (s *dbStore) Cmd(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketCmd)).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

// CmdsWithSeq returns all command lines with sequence numbers in [from, upto).
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, Cmd{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return cmds, err
}

// NextCmd finds the first command line at or after from that starts with
// prefix.
func (s *dbStore) NextCmd(from int, prefix string) (Cmd, error) {
	return s.findCmd(prefix, func(c *bolt.Cursor) (k, v []byte, next func() ([]byte, []byte)) {
		k, v = c.Seek(marshalSeq(uint64(from)))
		return k, v, c.Next
	})
}

// PrevCmd finds the last command line before upto that starts with prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	return s.findCmd(prefix, func(c *bolt.Cursor) (k, v []byte, next func() ([]byte, []byte)) {
		k, _ = c.Seek(marshalSeq(uint64(upto)))
		if k == nil {
			// upto is past the last entry.
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		return k, v, c.Prev
	})
}

// Walks the command bucket in the direction chosen by start, returning the
// first entry that has prefix.
func (s *dbStore) findCmd(prefix string, start func(*bolt.Cursor) ([]byte, []byte, func() ([]byte, []byte))) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		p := []byte(prefix)
		k, v, next := start(tx.Bucket([]byte(bucketCmd)).Cursor())
		for ; k != nil; k, v = next() {
			if bytes.HasPrefix(v, p) {
				cmd = Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
