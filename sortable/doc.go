// Package sortable provides wrapper types for primitive types that implement
// the Sortable interface, enabling their use as entries in sorted lists.
//
// # Overview
//
// The sortable package defines the [Sortable] interface and ready-to-use
// implementations for common primitive types: [Int], [Byte], [Float], [String]
// and [Natural]. [Compare] turns any Sortable type into the three-way comparison
// used by the tree backends (see [github.com/amp-labs/amp-sortedlist/tree.New]).
//
// # Usage
//
//	list := sortedlist.New[sortable.Int]()
//	list.Add(sortable.Int(42))
//	list.Add(sortable.Int(10))
//	list.Add(sortable.Int(25))
//
//	// Entries are returned in sorted order: 10, 25, 42
//	for val := range list.Seq() {
//	    fmt.Println(int(val))
//	}
//
// # Creating Custom Sortable Types
//
//	type Job struct {
//	    Priority int
//	    Name     string
//	}
//
//	func (j Job) Equals(other Job) bool {
//	    return j.Priority == other.Priority && j.Name == other.Name
//	}
//
//	func (j Job) LessThan(other Job) bool {
//	    if j.Priority != other.Priority {
//	        return j.Priority < other.Priority
//	    }
//	    return j.Name < other.Name
//	}
//
// Equals has to agree with LessThan. A list finds entries by comparison, so two
// values that are neither less nor greater than each other are the same entry
// as far as Remove, Contains and GetPosition are concerned.
//
// Types that are already ordered by the language (ints, strings) can skip the
// wrappers and use [github.com/amp-labs/amp-sortedlist/sortedlist.NewFunc] with
// cmp.Compare instead.
package sortable
