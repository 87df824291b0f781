// Package hcl provides the HCL implementation of config.Decoder. It parses
// `sweep` blocks into the format-agnostic model, keeping every axis value with
// the exact spelling it has in the file.
//
// A sweep file looks like this:
//
//	sweep "gbrt" {
//	  job_type = "gbrt"
//	  command  = ["python", "train.py"]
//
//	  axis "learning_rate" {
//	    values = [1.0, 0.9, 0.8]
//	  }
//
//	  axis "max_depth" {
//	    values = [3, 5]
//	  }
//
//	  args = [
//	    "gbrt",
//	    { "--learning-rate" = axis.learning_rate },
//	    { "--max-depth=" = axis.max_depth },
//	  ]
//	}
//
// An `args` element is a constant, an `axis.<name>` reference, or a
// single-entry object whose key is a flag. A flag ending in `=` is glued to
// its value.
package hcl
