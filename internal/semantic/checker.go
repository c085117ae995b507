package semantic

import (
	"fmt"

	"github.com/kolkov/toylang/internal/ast"
)

// CheckPlacement reports whether a node of kind child may be appended under
// a node of kind parent. It returns nil when the placement is legal and an
// *Error with the diagnosis otherwise.
//
// Every child kind and every parent kind is listed explicitly.
func CheckPlacement(child, parent ast.Kind) error {
	var msg string
	switch child {
	case ast.Int, ast.Float, ast.String, ast.Bool:
		msg = checkValue(child, parent)
	case ast.Comment:
		msg = checkComment(parent)
	case ast.Arg:
		msg = checkArg(parent)
	case ast.ConstantRef:
		msg = checkConstantRef(parent)
	case ast.Constant:
		msg = checkConstant(parent)
	case ast.Assignment:
		msg = checkAssignment(parent)
	case ast.BuiltinFunctionCall, ast.FunctionCall:
		msg = checkCall(child, parent)
	case ast.Parens:
		msg = checkParens(parent)
	case ast.List:
		msg = checkList(parent)
	case ast.LoopForRangeInProgress, ast.LoopForRange:
		msg = checkLoop(parent)
	case ast.FunctionDefInProgress:
		msg = checkFunctionDef(parent)
	case ast.Println:
		msg = checkPrintln(parent)
	case ast.If:
		msg = checkIf(parent)
	case ast.Type:
		msg = checkType(parent)
	case ast.Struct:
		msg = checkStruct(parent)
	case ast.StructEdit:
		msg = checkStructEdit(parent)
	case ast.Rust:
		msg = checkRust(parent)
	case ast.Root, ast.BuiltinFunctionDef, ast.FunctionDef, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		// Layout markers and rewrite results are placed by the compiler itself.
	}
	switch msg {
	case "":
		return nil
	case errImpossible:
		return errorf(child, parent, errImpossible, child, parent)
	}
	return &Error{Child: child, Parent: parent, Message: msg}
}

func checkValue(child, parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.List, ast.FunctionDefInProgress, ast.FunctionDef, ast.Constant,
		ast.BuiltinFunctionCall, ast.FunctionCall, ast.BuiltinFunctionDef,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.Println, ast.If, ast.StructEdit:
		return ""
	case ast.Assignment:
		return fmt.Sprintf(errValueInAssignment, child)
	case ast.Parens:
		return fmt.Sprintf(errValueInParens, child)
	case ast.Struct:
		return fmt.Sprintf(errValueInStruct, child)
	case ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.ConstantRef,
		ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkComment(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.List, ast.FunctionDefInProgress, ast.FunctionDef, ast.BuiltinFunctionDef,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.If:
		return ""
	case ast.Constant:
		return errCommentInConstant
	case ast.Assignment:
		return errCommentInAssignment
	case ast.BuiltinFunctionCall:
		return errCommentInBuiltin
	case ast.FunctionCall:
		return errCommentInCall
	case ast.Parens:
		return errCommentInParens
	case ast.Struct:
		return fmt.Sprintf(errValueInStruct, "comment")
	case ast.StructEdit:
		return errCommentInStructEdit
	case ast.Println, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg,
		ast.ConstantRef, ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkArg(parent ast.Kind) string {
	switch parent {
	case ast.List, ast.FunctionDefInProgress, ast.FunctionDef, ast.If:
		return ""
	case ast.Root, ast.Constant, ast.Assignment, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall,
		ast.FunctionCall, ast.Parens, ast.LoopForRangeInProgress, ast.LoopForRange, ast.Println,
		ast.Struct, ast.StructEdit, ast.Rust, ast.Comment, ast.Int, ast.Float, ast.String,
		ast.Bool, ast.Arg, ast.ConstantRef, ast.Type, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkConstantRef(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.List, ast.FunctionDefInProgress, ast.FunctionDef, ast.Constant,
		ast.BuiltinFunctionCall, ast.FunctionCall, ast.BuiltinFunctionDef, ast.Println, ast.If,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.Struct, ast.StructEdit:
		return ""
	case ast.Assignment:
		return errConstantsAreImmutable
	case ast.Parens:
		return fmt.Sprintf(errValueInParens, "constant reference")
	case ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.ConstantRef,
		ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkConstant(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.FunctionDefInProgress, ast.FunctionDef, ast.Assignment, ast.BuiltinFunctionDef,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.List, ast.Constant:
		return ""
	case ast.Struct:
		return fmt.Sprintf(errValueInStruct, "undefined constant")
	case ast.BuiltinFunctionCall, ast.FunctionCall, ast.Parens, ast.Println, ast.If,
		ast.StructEdit, ast.Rust, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg,
		ast.ConstantRef, ast.Type, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errConstantUndefined
	}
	return errConstantUndefined
}

func checkAssignment(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.FunctionDefInProgress, ast.FunctionDef, ast.LoopForRangeInProgress,
		ast.LoopForRange, ast.If, ast.Struct:
		return ""
	case ast.List:
		return errAssignmentInList
	case ast.StructEdit:
		return errAssignmentInStructEdit
	case ast.Constant:
		return errAssignmentInConstant
	case ast.BuiltinFunctionCall:
		return errAssignmentInBuiltin
	case ast.FunctionCall:
		return errAssignmentInCall
	case ast.Assignment:
		return fmt.Sprintf(errValueInAssignment, `"="`)
	case ast.Parens:
		return fmt.Sprintf(errValueInParens, `"="`)
	case ast.BuiltinFunctionDef, ast.Println, ast.Comment, ast.Int, ast.Float, ast.String,
		ast.Bool, ast.Arg, ast.ConstantRef, ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent,
		ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkCall(child, parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.List, ast.FunctionDefInProgress, ast.FunctionDef, ast.Constant,
		ast.BuiltinFunctionCall, ast.FunctionCall, ast.BuiltinFunctionDef,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.Println, ast.If, ast.StructEdit:
		return ""
	case ast.Assignment:
		return fmt.Sprintf(errValueInAssignment, "function call")
	case ast.Struct:
		return fmt.Sprintf(errValueInStruct, "function call")
	case ast.Parens:
		if child == ast.BuiltinFunctionCall {
			return fmt.Sprintf(errValueInParens, "inbuilt function call")
		}
		return fmt.Sprintf(errValueInParens, "function call")
	case ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.ConstantRef,
		ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkParens(parent ast.Kind) string {
	switch parent {
	case ast.FunctionDefInProgress, ast.FunctionDef, ast.BuiltinFunctionCall, ast.FunctionCall,
		ast.BuiltinFunctionDef, ast.LoopForRangeInProgress, ast.If:
		return ""
	case ast.List:
		return errListPlacement
	case ast.LoopForRange:
		return errLoopPlacement
	case ast.Parens:
		return fmt.Sprintf(errValueInParens, "parenthesis")
	case ast.Root:
		return errParensInRoot
	case ast.Constant:
		return errParensInConstant
	case ast.Assignment:
		return errParensInAssignment
	case ast.StructEdit:
		return errParensInStructEdit
	case ast.Struct:
		return fmt.Sprintf(errValueInStruct, "parenthesis")
	case ast.Println, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg,
		ast.ConstantRef, ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkList(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.List, ast.FunctionDefInProgress, ast.FunctionDef, ast.BuiltinFunctionDef,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.Constant, ast.BuiltinFunctionCall,
		ast.FunctionCall, ast.Println, ast.If, ast.StructEdit:
		return ""
	case ast.Parens, ast.Assignment:
		return errListPlacement
	case ast.Struct:
		return fmt.Sprintf(errValueInStruct, "list")
	case ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.ConstantRef,
		ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkLoop(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.FunctionDefInProgress, ast.FunctionDef, ast.BuiltinFunctionCall,
		ast.BuiltinFunctionDef, ast.LoopForRangeInProgress, ast.LoopForRange, ast.Println, ast.If:
		return ""
	case ast.List:
		return errListPlacement
	case ast.FunctionCall, ast.Parens, ast.Constant, ast.Assignment, ast.Struct, ast.StructEdit:
		return errLoopPlacement
	case ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.ConstantRef,
		ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkFunctionDef(parent ast.Kind) string {
	switch parent {
	case ast.Constant, ast.FunctionDef, ast.FunctionDefInProgress, ast.LoopForRangeInProgress,
		ast.Println, ast.If:
		return ""
	case ast.Root, ast.Assignment, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall, ast.FunctionCall,
		ast.Parens, ast.List, ast.LoopForRange, ast.Struct, ast.StructEdit, ast.Rust, ast.Comment,
		ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.ConstantRef, ast.Type, ast.Eol,
		ast.Seol, ast.Indent, ast.Unused:
		return errFnDefPlacement
	}
	return errFnDefPlacement
}

func checkPrintln(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.FunctionDef, ast.FunctionDefInProgress, ast.LoopForRangeInProgress,
		ast.LoopForRange, ast.BuiltinFunctionCall, ast.If:
		return ""
	case ast.List, ast.FunctionCall, ast.Parens, ast.Assignment, ast.Println, ast.Constant,
		ast.Struct, ast.StructEdit:
		return errPrintlnPlacement
	case ast.BuiltinFunctionDef, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg,
		ast.ConstantRef, ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkIf(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.FunctionDef, ast.FunctionDefInProgress, ast.LoopForRangeInProgress,
		ast.LoopForRange, ast.BuiltinFunctionCall, ast.If, ast.List, ast.FunctionCall, ast.Constant,
		ast.StructEdit:
		return ""
	case ast.Parens, ast.Println, ast.Assignment, ast.Struct:
		return errIfPlacement
	case ast.BuiltinFunctionDef, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg,
		ast.ConstantRef, ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

func checkType(parent ast.Kind) string {
	switch parent {
	case ast.FunctionDefInProgress, ast.Parens, ast.List:
		return ""
	case ast.Root, ast.Constant, ast.Assignment, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall,
		ast.FunctionDef, ast.FunctionCall, ast.If, ast.LoopForRangeInProgress, ast.LoopForRange,
		ast.Println, ast.Struct, ast.StructEdit:
		return errTypePlacement
	case ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.ConstantRef,
		ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errImpossible
	}
	return errImpossible
}

// checkStruct only admits a struct as the value of a new constant, which
// also names its type.
func checkStruct(parent ast.Kind) string {
	switch parent {
	case ast.Constant:
		return ""
	case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg,
		ast.ConstantRef, ast.Assignment, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall,
		ast.FunctionDefInProgress, ast.FunctionDef, ast.FunctionCall, ast.Parens, ast.List,
		ast.Struct, ast.StructEdit, ast.If, ast.LoopForRangeInProgress, ast.LoopForRange,
		ast.Type, ast.Println, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errStructPlacement
	}
	return errStructPlacement
}

func checkStructEdit(parent ast.Kind) string {
	switch parent {
	case ast.Assignment:
		return ""
	case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg,
		ast.Constant, ast.ConstantRef, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall,
		ast.FunctionDefInProgress, ast.FunctionDef, ast.FunctionCall, ast.Parens, ast.List,
		ast.Struct, ast.StructEdit, ast.If, ast.LoopForRangeInProgress, ast.LoopForRange,
		ast.Type, ast.Println, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return errStructEditPlacement
	}
	return errStructEditPlacement
}

// checkRust admits raw Rust wherever a statement may start.
func checkRust(parent ast.Kind) string {
	switch parent {
	case ast.Root, ast.FunctionDef, ast.LoopForRangeInProgress, ast.LoopForRange:
		return ""
	case ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.Constant,
		ast.ConstantRef, ast.Assignment, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall,
		ast.FunctionDefInProgress, ast.FunctionCall, ast.Parens, ast.List, ast.Struct,
		ast.StructEdit, ast.If, ast.Type, ast.Println, ast.Rust, ast.Eol, ast.Seol, ast.Indent,
		ast.Unused:
		return errRustPlacement
	}
	return errRustPlacement
}
