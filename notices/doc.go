// Package notices decodes the notices shard of the NationStates API and prunes
// it down to the notices worth showing.
//
// Which notices are hidden is decided by an expr-lang expression evaluated
// against every notice. The default rule hides notices that were already read
// and the informational (I) and update (U) types:
//
//	!IsNew || Type in ["I", "U"]
//
// # Usage
//
//	f, err := notices.Compile(`!IsNew || Type == "I"`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	pruned := f.Apply(nation)
//	fmt.Println(notices.Format(pruned))
package notices
